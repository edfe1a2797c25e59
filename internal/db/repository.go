package db

import (
	"context"
	"time"
)

// Direction names which way a conversion went.
type Direction string

const (
	DirectionEncode Direction = "encode"
	DirectionDecode Direction = "decode"
)

// Conversion is one recorded encode or decode call.
type Conversion struct {
	ID        int64
	Direction Direction
	Surface   string
	Input     string
	Output    string
	CreatedAt time.Time
}

type RecordConversionParams struct {
	Direction Direction
	Surface   string
	Input     string
	Output    string
}

// Repository stores conversion history.
type Repository interface {
	RecordConversion(ctx context.Context, arg RecordConversionParams) (Conversion, error)
	GetConversion(ctx context.Context, id int64) (Conversion, error)
	ListRecentConversions(ctx context.Context, limit int32) ([]Conversion, error)
	CountConversions(ctx context.Context) (int64, error)
	DeleteConversionsBefore(ctx context.Context, before time.Time) (int64, error)
	Close() error
}
