package domain

import "time"

// AnalyticsSample is a daily performance row for a campaign. Samples
// are read-only here; ingestion happens outside this service.
type AnalyticsSample struct {
	ID          int64
	CampaignID  int64
	Impressions int64
	Clicks      int64
	Spend       int64
	SampleDate  time.Time
}
