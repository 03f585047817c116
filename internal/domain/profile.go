package domain

const (
	ProfileStatusOK                 = "ok"
	ProfileStatusNoCustomerSelected = "no_customer_selected"
)

type PersonalInfo struct {
	Name   string  `json:"name"`
	Age    float64 `json:"age"`
	Gender string  `json:"gender"`
	Email  string  `json:"email"`
	Phone  string  `json:"phone"`
	Region string  `json:"region"`
}

type SubscriptionDetails struct {
	// Current é falso quando a assinatura foi cancelada; nesse caso a view mostra
	// os detalhes da assinatura anterior, incluindo a data de término.
	Current                 bool   `json:"current"`
	Status                  string `json:"status"`
	Type                    string `json:"type"`
	Plan                    string `json:"plan"`
	AutoRenew               string `json:"auto_renew"`
	StartDate               string `json:"start_date"`
	EndDate                 string `json:"end_date,omitempty"`
	DiscountUsedLastRenewal string `json:"discount_used_last_renewal"`
	PaymentMethod           string `json:"payment_method"`
	SignupSource            string `json:"signup_source"`
	PreviousRenewalStatus   string `json:"previous_renewal_status"`
	DowngradeHistory        string `json:"downgrade_history"`
	TenureDays              int    `json:"tenure_days"`
}

type UserActivity struct {
	MostReadCategory        string  `json:"most_read_category"`
	PrimaryDevice           string  `json:"primary_device"`
	AvgArticlesPerWeek      float64 `json:"avg_articles_per_week"`
	DaysSinceLastLogin      float64 `json:"days_since_last_login"`
	ArticleSkipsPerWeek     float64 `json:"article_skips_per_week"`
	TimeSpentPerSessionMins float64 `json:"time_spent_per_session_mins"`
}

type CampaignEngagement struct {
	LastCampaignEngaged string  `json:"last_campaign_engaged"`
	EmailOpenRate       string  `json:"email_open_rate"`
	CampaignCTR         float64 `json:"campaign_ctr"`
	CompletionRate      string  `json:"completion_rate"`
}

type CustomerSupport struct {
	SupportTicketsLast90d float64 `json:"support_tickets_last_90d"`
	CSATScore             float64 `json:"csat_score"`
	SentimentScore        float64 `json:"sentiment_score"`
	NPSScore              float64 `json:"nps_score"`
}

type CustomerProfile struct {
	CustomerID   string              `json:"customer_id"`
	Personal     PersonalInfo        `json:"personal"`
	Subscription SubscriptionDetails `json:"subscription"`
	Activity     UserActivity        `json:"activity"`
	Campaign     CampaignEngagement  `json:"campaign"`
	Support      CustomerSupport     `json:"support"`
}

type ProfileView struct {
	Status   string           `json:"status"`
	Message  string           `json:"message,omitempty"`
	Customer *CustomerProfile `json:"customer,omitempty"`
	Risk     *RiskAssessment  `json:"risk,omitempty"`
}
