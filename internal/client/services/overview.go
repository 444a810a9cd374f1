package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/wedlink-admin/internal/client/client"
	"github.com/dmitrijs2005/wedlink-admin/internal/client/models"
)

// Stats is the admin panel: the raw overview plus growth and decline as
// shares of their sum.
type Stats struct {
	models.Overview
	GrowthShare  float64
	DeclineShare float64
}

type OverviewService interface {
	Get(ctx context.Context) (*Stats, error)
}

type overviewService struct {
	client client.Client
}

func NewOverviewService(c client.Client) OverviewService {
	return &overviewService{client: c}
}

func (s *overviewService) Get(ctx context.Context) (*Stats, error) {
	o, err := s.client.Overview(ctx)
	if err != nil {
		return nil, fmt.Errorf("overview: %w", err)
	}
	st := &Stats{Overview: *o}
	st.GrowthShare, st.DeclineShare = o.Split()
	return st, nil
}
