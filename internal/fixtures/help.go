package fixtures

import "github.com/good-yellow-bee/smartdetect/internal/models"

// FAQs returns the help-centre questions.
func FAQs() []*models.FAQ {
	return []*models.FAQ{
		{
			Question: "How does SmartDetect's anomaly detection work?",
			Answer:   "SmartDetect uses advanced machine learning algorithms to establish baseline behavior patterns for your applications. It continuously monitors traffic and activities, comparing them against these baselines to identify anomalies that may indicate security threats. The system adapts over time, learning from new patterns and reducing false positives.",
		},
		{
			Question: "What types of threats can SmartDetect identify?",
			Answer:   "SmartDetect can identify a wide range of security threats including SQL injection attempts, cross-site scripting (XSS), DDoS attacks, brute force login attempts, unusual data access patterns, privilege escalation attempts, and zero-day exploits through behavioral analysis.",
		},
		{
			Question: "How do I integrate SmartDetect with my application?",
			Answer:   "Integration is simple: 1) Add your application in the Applications page, 2) Install our SDK or configure your application to send logs to our API endpoint, 3) Configure detection parameters based on your needs, 4) Start monitoring. Detailed integration guides are available for popular frameworks.",
		},
		{
			Question: "Can I customize the threat detection sensitivity?",
			Answer:   "Yes! Each application can have its own detection parameters. You can adjust sensitivity thresholds, configure which types of anomalies to monitor, set up custom rules, and define automatic response actions. Navigate to your application's configuration page to customize these settings.",
		},
		{
			Question: "What should I do when a threat is detected?",
			Answer:   "When a threat is detected, SmartDetect will alert you based on your notification preferences. Review the threat details in the Alerts page, which includes the threat type, severity, affected resources, and AI-powered analysis. You can then take actions such as blocking the threat, escalating to your team, or marking as false positive.",
		},
		{
			Question: "How long is security data retained?",
			Answer:   "By default, security event data is retained for 90 days. You can customize this in Settings > Data & Privacy, with options ranging from 30 days to 1 year. Historical data can be exported at any time for compliance or analysis purposes.",
		},
	}
}

// DefaultProfile returns the profile of a fresh installation.
func DefaultProfile() *models.Profile {
	return &models.Profile{
		FirstName:  "John",
		LastName:   "Doe",
		Email:      "john.doe@company.com",
		Phone:      "+1 (555) 123-4567",
		Role:       "Security Administrator",
		OrgName:    "Acme Corporation",
		OrgSize:    "100-500 employees",
		OrgAddress: "123 Security Street, Tech City, TC 12345",
	}
}
