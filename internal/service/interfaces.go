package service

import (
	"context"

	"trends-go/pkg/trends"
)

// VolumeService produces dense query-volume tables for the HTTP surface.
// *trends.Fetcher satisfies it.
type VolumeService interface {
	FetchVolumes(ctx context.Context, req trends.FetchRequest) (*trends.Table, error)
}
