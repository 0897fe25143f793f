package models

// DateSuffix is appended to ISO dates in StartDate/EndDate.
const DateSuffix = "T00:00:00.000+00:00"

// PeriodSummary is the persisted OHLCV rollup of one ticker over one period.
//
// Field names follow the legacy document schema: the period label lives in
// "Bulan" and the ticker key is lowercase.
//
// swagger:model PeriodSummary
type PeriodSummary struct {
	Label     string  `json:"Bulan" bson:"Bulan" parquet:"Bulan" example:"2024-01"`
	StartDate string  `json:"StartDate" bson:"StartDate" parquet:"StartDate" example:"2024-01-02T00:00:00.000+00:00"`
	EndDate   string  `json:"EndDate" bson:"EndDate" parquet:"EndDate" example:"2024-01-31T00:00:00.000+00:00"`
	Open      float64 `json:"Open" bson:"Open" parquet:"Open" example:"100"`
	Close     float64 `json:"Close" bson:"Close" parquet:"Close" example:"112"`
	Low       float64 `json:"Low" bson:"Low" parquet:"Low" example:"99"`
	High      float64 `json:"High" bson:"High" parquet:"High" example:"115"`
	AvgVolume int64   `json:"AvgVolume" bson:"AvgVolume" parquet:"AvgVolume" example:"1500"`
	MaxVolume int64   `json:"MaxVolume" bson:"MaxVolume" parquet:"MaxVolume" example:"2000"`
	Ticker    string  `json:"ticker" bson:"ticker" parquet:"ticker" example:"BBCA.JK"`
}
