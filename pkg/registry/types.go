package registry

import "github.com/flowdraft/flowdraft/pkg/models"

// Node type ids for the subset of the n8n catalog this service generates.
const (
	TypeWebhook          = "n8n-nodes-base.webhook"
	TypeScheduleTrigger  = "n8n-nodes-base.scheduleTrigger"
	TypeManualTrigger    = "n8n-nodes-base.manualTrigger"
	TypeHTTPRequest      = "n8n-nodes-base.httpRequest"
	TypeSlack            = "n8n-nodes-base.slack"
	TypeEmailSend        = "n8n-nodes-base.emailSend"
	TypeTelegram         = "n8n-nodes-base.telegram"
	TypeSet              = "n8n-nodes-base.set"
	TypeCode             = "n8n-nodes-base.code"
	TypeIf               = "n8n-nodes-base.if"
	TypeMerge            = "n8n-nodes-base.merge"
	TypeNoOp             = "n8n-nodes-base.noOp"
	TypeRSSFeedRead      = "n8n-nodes-base.rssFeedRead"
	TypeXML              = "n8n-nodes-base.xml"
	TypeOpenAI           = "n8n-nodes-base.openAi"
	TypeWordpress        = "n8n-nodes-base.wordpress"
	TypeGoogleSheets     = "n8n-nodes-base.googleSheets"
	TypePostgres         = "n8n-nodes-base.postgres"
	TypeRespondToWebhook = "n8n-nodes-base.respondToWebhook"
)

// RegisterDefaultTypes registers the built-in node type table.
func (r *Registry) RegisterDefaultTypes() {
	specs := []*NodeTypeSpec{
		{
			Type:              TypeWebhook,
			DisplayName:       "Webhook",
			CurrentVersion:    2,
			SupportedVersions: []int{1, 2},
			RequiredParams:    []string{"path"},
			OptionalParams:    []string{"httpMethod", "responseMode"},
			Category:          models.CategoryTrigger,
		},
		{
			Type:              TypeScheduleTrigger,
			DisplayName:       "Schedule Trigger",
			CurrentVersion:    1,
			SupportedVersions: []int{1},
			RequiredParams:    []string{"cronExpression"},
			Category:          models.CategoryTrigger,
		},
		{
			Type:              TypeManualTrigger,
			DisplayName:       "Manual Trigger",
			CurrentVersion:    1,
			SupportedVersions: []int{1},
			Category:          models.CategoryTrigger,
		},
		{
			Type:              TypeHTTPRequest,
			DisplayName:       "HTTP Request",
			CurrentVersion:    4,
			SupportedVersions: []int{1, 2, 3, 4},
			RequiredParams:    []string{"url"},
			OptionalParams:    []string{"method", "headers", "body", "authentication"},
			Category:          models.CategoryIntegration,
		},
		{
			Type:              TypeSlack,
			DisplayName:       "Slack",
			CurrentVersion:    2,
			SupportedVersions: []int{1, 2},
			RequiredParams:    []string{"channel", "text"},
			OptionalParams:    []string{"attachments", "username"},
			Category:          models.CategoryIntegration,
		},
		{
			Type:              TypeEmailSend,
			DisplayName:       "Send Email",
			CurrentVersion:    2,
			SupportedVersions: []int{1, 2},
			RequiredParams:    []string{"toEmail", "subject"},
			OptionalParams:    []string{"text", "html"},
			Category:          models.CategoryIntegration,
		},
		{
			Type:              TypeTelegram,
			DisplayName:       "Telegram",
			CurrentVersion:    1,
			SupportedVersions: []int{1},
			RequiredParams:    []string{"chatId", "text"},
			Category:          models.CategoryIntegration,
		},
		{
			Type:              TypeSet,
			DisplayName:       "Edit Fields",
			CurrentVersion:    3,
			SupportedVersions: []int{1, 2, 3},
			OptionalParams:    []string{"values", "keepOnlySet"},
			Category:          models.CategoryProcessing,
		},
		{
			Type:              TypeCode,
			DisplayName:       "Code",
			CurrentVersion:    2,
			SupportedVersions: []int{1, 2},
			RequiredParams:    []string{"jsCode"},
			OptionalParams:    []string{"mode"},
			Category:          models.CategoryProcessing,
		},
		{
			Type:              TypeIf,
			DisplayName:       "If",
			CurrentVersion:    2,
			SupportedVersions: []int{1, 2},
			RequiredParams:    []string{"conditions"},
			Category:          models.CategoryProcessing,
		},
		{
			Type:              TypeMerge,
			DisplayName:       "Merge",
			CurrentVersion:    2,
			SupportedVersions: []int{1, 2},
			OptionalParams:    []string{"mode"},
			Category:          models.CategoryProcessing,
		},
		{
			Type:              TypeNoOp,
			DisplayName:       "No Operation",
			CurrentVersion:    1,
			SupportedVersions: []int{1},
			Category:          models.CategoryProcessing,
		},
		{
			Type:              TypeRSSFeedRead,
			DisplayName:       "RSS Read",
			CurrentVersion:    1,
			SupportedVersions: []int{1},
			RequiredParams:    []string{"url"},
			Category:          models.CategoryIntegration,
		},
		{
			Type:              TypeXML,
			DisplayName:       "XML",
			CurrentVersion:    1,
			SupportedVersions: []int{1},
			OptionalParams:    []string{"mode", "dataPropertyName"},
			Category:          models.CategoryProcessing,
		},
		{
			Type:              TypeOpenAI,
			DisplayName:       "OpenAI",
			CurrentVersion:    1,
			SupportedVersions: []int{1},
			RequiredParams:    []string{"prompt"},
			OptionalParams:    []string{"model", "temperature"},
			Category:          models.CategoryIntegration,
		},
		{
			Type:              TypeWordpress,
			DisplayName:       "Wordpress",
			CurrentVersion:    1,
			SupportedVersions: []int{1},
			RequiredParams:    []string{"title"},
			OptionalParams:    []string{"content", "status"},
			Category:          models.CategoryIntegration,
		},
		{
			Type:              TypeGoogleSheets,
			DisplayName:       "Google Sheets",
			CurrentVersion:    4,
			SupportedVersions: []int{1, 2, 3, 4},
			RequiredParams:    []string{"documentId"},
			OptionalParams:    []string{"sheetName", "operation"},
			Category:          models.CategoryIntegration,
		},
		{
			Type:              TypePostgres,
			DisplayName:       "Postgres",
			CurrentVersion:    2,
			SupportedVersions: []int{1, 2},
			RequiredParams:    []string{"query"},
			OptionalParams:    []string{"operation"},
			Category:          models.CategoryIntegration,
		},
		{
			Type:              TypeRespondToWebhook,
			DisplayName:       "Respond to Webhook",
			CurrentVersion:    1,
			SupportedVersions: []int{1},
			OptionalParams:    []string{"respondWith", "responseBody"},
			Category:          models.CategoryResponse,
		},
	}

	for _, spec := range specs {
		r.Register(spec)
	}
}
