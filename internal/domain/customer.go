package domain

import (
	"strconv"
)

// Customer é uma linha do dataset de clientes. Imutável depois de carregada.
type Customer struct {
	CustomerID              string  `json:"customer_id"`
	FirstName               string  `json:"first_name"`
	LastName                string  `json:"last_name"`
	Gender                  string  `json:"gender"`
	Email                   string  `json:"email"`
	Phone                   string  `json:"phone"`
	Region                  string  `json:"region"`
	SubscriptionStatus      string  `json:"subscription_status"`
	SubscriptionType        string  `json:"subscription_type"`
	PlanType                string  `json:"plan_type"`
	AutoRenew               string  `json:"auto_renew"`
	SubscriptionStartDate   string  `json:"subscription_start_date"`
	SubscriptionEndDate     string  `json:"subscription_end_date"`
	DiscountUsedLastRenewal string  `json:"discount_used_last_renewal"`
	PaymentMethod           string  `json:"payment_method"`
	SignupSource            string  `json:"signup_source"`
	PreviousRenewalStatus   string  `json:"previous_renewal_status"`
	DowngradeHistory        string  `json:"downgrade_history"`
	MostReadCategory        string  `json:"most_read_category"`
	AvgArticlesPerWeek      float64 `json:"avg_articles_per_week"`
	DaysSinceLastLogin      float64 `json:"days_since_last_login"`
	PrimaryDevice           string  `json:"primary_device"`
	ArticleSkipsPerWeek     float64 `json:"article_skips_per_week"`
	TimeSpentPerSessionMins float64 `json:"time_spent_per_session_mins"`
	LastCampaignEngaged     string  `json:"last_campaign_engaged"`
	EmailOpenRate           float64 `json:"email_open_rate"`
	CampaignCTR             float64 `json:"campaign_ctr"`
	CompletionRate          float64 `json:"completion_rate"`
	SupportTicketsLast90d   float64 `json:"support_tickets_last_90d"`
	CSATScore               float64 `json:"csat_score"`
	SentimentScore          float64 `json:"sentiment_score"`
	NPSScore                float64 `json:"nps_score"`
	CustomerAge             float64 `json:"customer_age"`
	TenureDays              float64 `json:"tenure_days"`
	ChurnRisk               string  `json:"churn_risk"`
	ChurnScore              float64 `json:"churn_score"`
	raw                     map[string]string
}

// CustomerColumns são as colunas obrigatórias do dataset de clientes.
var CustomerColumns = []string{
	"customer_id", "first_name", "last_name", "gender", "email", "Phone", "region",
	"subscription_status", "subscription_type", "plan_type", "auto_renew",
	"subscription_start_date", "subscription_end_date", "discount_used_last_renewal",
	"payment_method", "signup_source", "previous_renewal_status", "downgrade_history",
	"most_read_category", "avg_articles_per_week", "days_since_last_login", "primary_device",
	"article_skips_per_week", "time_spent_per_session_mins", "last_campaign_engaged",
	"email_open_rate", "campaign_ctr", "completion_rate", "support_tickets_last_90d",
	"csat_score", "sentiment_score", "nps_score", "customer_age", "tenure_days",
	"churn_risk", "churn_score",
}

// NewCustomer monta um Customer a partir da linha crua do CSV (coluna → texto).
// Campos numéricos inválidos ficam em zero no struct; o texto original continua em Raw
// e é o que o pré-processamento consome.
func NewCustomer(raw map[string]string) *Customer {
	c := &Customer{
		CustomerID:              raw["customer_id"],
		FirstName:               raw["first_name"],
		LastName:                raw["last_name"],
		Gender:                  raw["gender"],
		Email:                   raw["email"],
		Phone:                   raw["Phone"],
		Region:                  raw["region"],
		SubscriptionStatus:      raw["subscription_status"],
		SubscriptionType:        raw["subscription_type"],
		PlanType:                raw["plan_type"],
		AutoRenew:               raw["auto_renew"],
		SubscriptionStartDate:   raw["subscription_start_date"],
		SubscriptionEndDate:     raw["subscription_end_date"],
		DiscountUsedLastRenewal: raw["discount_used_last_renewal"],
		PaymentMethod:           raw["payment_method"],
		SignupSource:            raw["signup_source"],
		PreviousRenewalStatus:   raw["previous_renewal_status"],
		DowngradeHistory:        raw["downgrade_history"],
		MostReadCategory:        raw["most_read_category"],
		AvgArticlesPerWeek:      parseFloat(raw["avg_articles_per_week"]),
		DaysSinceLastLogin:      parseFloat(raw["days_since_last_login"]),
		PrimaryDevice:           raw["primary_device"],
		ArticleSkipsPerWeek:     parseFloat(raw["article_skips_per_week"]),
		TimeSpentPerSessionMins: parseFloat(raw["time_spent_per_session_mins"]),
		LastCampaignEngaged:     raw["last_campaign_engaged"],
		EmailOpenRate:           parseFloat(raw["email_open_rate"]),
		CampaignCTR:             parseFloat(raw["campaign_ctr"]),
		CompletionRate:          parseFloat(raw["completion_rate"]),
		SupportTicketsLast90d:   parseFloat(raw["support_tickets_last_90d"]),
		CSATScore:               parseFloat(raw["csat_score"]),
		SentimentScore:          parseFloat(raw["sentiment_score"]),
		NPSScore:                parseFloat(raw["nps_score"]),
		CustomerAge:             parseFloat(raw["customer_age"]),
		TenureDays:              parseFloat(raw["tenure_days"]),
		ChurnRisk:               raw["churn_risk"],
		ChurnScore:              parseFloat(raw["churn_score"]),
	}

	c.raw = make(map[string]string, len(raw))
	for k, v := range raw {
		c.raw[k] = v
	}

	return c
}

// Raw devolve uma cópia dos valores crus da linha.
func (c *Customer) Raw() map[string]string {
	out := make(map[string]string, len(c.raw))
	for k, v := range c.raw {
		out[k] = v
	}
	return out
}

func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

func (c *Customer) IsActive() bool {
	return c.SubscriptionStatus == "Active"
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// CustomerSummary é o item da listagem de clientes.
type CustomerSummary struct {
	CustomerID string  `json:"customer_id"`
	Name       string  `json:"name"`
	Region     string  `json:"region"`
	ChurnRisk  string  `json:"churn_risk"`
	ChurnScore float64 `json:"churn_score"`
}
