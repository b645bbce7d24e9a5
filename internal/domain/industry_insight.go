package domain

import (
	"context"
	"strings"
	"time"
)

// InsightRefreshInterval is how far ahead next_update is scheduled.
const InsightRefreshInterval = 7 * 24 * time.Hour

type DemandLevel string

const (
	DemandLow    DemandLevel = "LOW"
	DemandMedium DemandLevel = "MEDIUM"
	DemandHigh   DemandLevel = "HIGH"
)

// ParseDemandLevel normalizes provider output such as "High" to HIGH.
func ParseDemandLevel(s string) (DemandLevel, bool) {
	d := DemandLevel(strings.ToUpper(strings.TrimSpace(s)))
	switch d {
	case DemandLow, DemandMedium, DemandHigh:
		return d, true
	}
	return "", false
}

type MarketOutlook string

const (
	OutlookPositive MarketOutlook = "POSITIVE"
	OutlookNeutral  MarketOutlook = "NEUTRAL"
	OutlookNegative MarketOutlook = "NEGATIVE"
)

// ParseMarketOutlook normalizes provider output such as "Positive" to POSITIVE.
func ParseMarketOutlook(s string) (MarketOutlook, bool) {
	o := MarketOutlook(strings.ToUpper(strings.TrimSpace(s)))
	switch o {
	case OutlookPositive, OutlookNeutral, OutlookNegative:
		return o, true
	}
	return "", false
}

type SalaryRange struct {
	Role     string  `json:"role"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Location string  `json:"location"`
}

// IndustryInsight is shared by every user in the same industry.
type IndustryInsight struct {
	ID                string        `json:"id"`
	Industry          string        `json:"industry"`
	SalaryRanges      []SalaryRange `json:"salary_ranges"`
	GrowthRate        float64       `json:"growth_rate"`
	DemandLevel       DemandLevel   `json:"demand_level"`
	TopSkills         []string      `json:"top_skills"`
	MarketOutlook     MarketOutlook `json:"market_outlook"`
	KeyTrends         []string      `json:"key_trends"`
	RecommendedSkills []string      `json:"recommended_skills"`
	LastUpdated       time.Time     `json:"last_updated"`
	NextUpdate        time.Time     `json:"next_update"`
}

// NewDefaultInsight is the placeholder created when the first user picks an industry.
func NewDefaultInsight(industry string, now time.Time) *IndustryInsight {
	return &IndustryInsight{
		Industry:          industry,
		SalaryRanges:      []SalaryRange{},
		GrowthRate:        0,
		DemandLevel:       DemandMedium,
		TopSkills:         []string{},
		MarketOutlook:     OutlookNeutral,
		KeyTrends:         []string{},
		RecommendedSkills: []string{},
		LastUpdated:       now,
		NextUpdate:        now.Add(InsightRefreshInterval),
	}
}

// InsightPayload is the validated, normalized content generated for an industry.
type InsightPayload struct {
	SalaryRanges      []SalaryRange
	GrowthRate        float64
	DemandLevel       DemandLevel
	TopSkills         []string
	MarketOutlook     MarketOutlook
	KeyTrends         []string
	RecommendedSkills []string
}

// RefreshResult is the outcome of one industry in a refresh sweep.
type RefreshResult struct {
	Industry string `json:"industry"`
	Err      error  `json:"-"`
}

func (r RefreshResult) OK() bool { return r.Err == nil }

type InsightRepository interface {
	GetByIndustry(ctx context.Context, industry string) (*IndustryInsight, error)
	ListIndustries(ctx context.Context) ([]string, error)
	// ApplyRefresh overwrites the generated fields and sets last_updated=now,
	// next_update=now+InsightRefreshInterval.
	ApplyRefresh(ctx context.Context, industry string, payload *InsightPayload, now time.Time) error
}

type InsightUsecase interface {
	GetForUser(ctx context.Context) (*IndustryInsight, error)
	RefreshAll(ctx context.Context) ([]RefreshResult, error)
}
