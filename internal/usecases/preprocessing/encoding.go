package preprocessing

// Mapas ordinais fixos. Valores fora do mapa viram 0.
var ordinalMaps = map[string]map[string]float64{
	"subscription_type":          {"Espresso": 0, "Digital": 1, "Digital+Print": 2},
	"plan_type":                  {"Monthly": 0, "Annual": 1},
	"auto_renew":                 {"Yes": 1, "No": 0},
	"discount_used_last_renewal": {"Yes": 1, "No": 0},
	"downgrade_history":          {"Yes": 1, "No": 0},
	"previous_renewal_status":    {"Auto": 1, "Manual": 0},
	"signup_source":              {"Web": 0, "Mobile App": 0, "Referral": 1},
}

type oneHotEncoding struct {
	column     string
	prefix     string
	vocabulary []string
}

// Vocabulários vistos no treino; a ordem segue o get_dummies (alfabética).
var oneHotEncodings = []oneHotEncoding{
	{column: "region", prefix: "region_", vocabulary: []string{"Asia", "Europe", "North America", "Others"}},
	{column: "most_read_category", prefix: "most_read_", vocabulary: []string{"Culture", "Environment", "Finance", "Politics", "Technology"}},
	{column: "primary_device", prefix: "primary_device_", vocabulary: []string{"Desktop", "Mobile", "Tablet"}},
	{column: "payment_method", prefix: "payment_method_", vocabulary: []string{"Credit Card", "Debit Card", "PayPal"}},
	{column: "last_campaign_engaged", prefix: "last_campaign_engaged_", vocabulary: []string{"Newsletter Promo", "Retention Offer", "Survey"}},
}

var continuousColumns = []string{
	"avg_articles_per_week",
	"days_since_last_login",
	"support_tickets_last_90d",
	"email_open_rate",
	"time_spent_per_session_mins",
	"completion_rate",
	"article_skips_per_week",
	"campaign_ctr",
	"nps_score",
	"sentiment_score",
	"csat_score",
	"customer_age",
	"tenure_days",
}

// defaultFeatures é a ordem de colunas do modelo em produção
var defaultFeatures = []string{
	"subscription_type", "plan_type", "auto_renew",
	"avg_articles_per_week", "days_since_last_login",
	"support_tickets_last_90d", "discount_used_last_renewal",
	"email_open_rate", "time_spent_per_session_mins",
	"completion_rate", "article_skips_per_week",
	"previous_renewal_status", "campaign_ctr", "nps_score",
	"sentiment_score", "csat_score", "customer_age", "signup_source",
	"downgrade_history", "tenure_days", "region_Asia", "region_Europe",
	"region_North America", "region_Others", "most_read_Culture",
	"most_read_Environment", "most_read_Finance", "most_read_Politics",
	"most_read_Technology", "primary_device_Desktop",
	"primary_device_Mobile", "primary_device_Tablet",
	"payment_method_Credit Card", "payment_method_Debit Card",
	"payment_method_PayPal", "last_campaign_engaged_Newsletter Promo",
	"last_campaign_engaged_Retention Offer",
	"last_campaign_engaged_Survey",
}

const DefaultSchemaVersion = "v2"

var knownFeatures = buildKnownFeatures()

func buildKnownFeatures() map[string]bool {
	known := make(map[string]bool, len(defaultFeatures))
	for column := range ordinalMaps {
		known[column] = true
	}
	for _, column := range continuousColumns {
		known[column] = true
	}
	for _, enc := range oneHotEncodings {
		for _, v := range enc.vocabulary {
			known[enc.prefix+v] = true
		}
	}
	return known
}
