package registry

// DefaultParameters returns the parameter skeleton for a node type. The
// result is a fresh map on every call so callers may mutate it freely.
// Unknown types get an empty map. This is a pure lookup keyed by type id;
// nothing about the user's input influences it.
func DefaultParameters(typeID string) map[string]any {
	switch typeID {
	case TypeWebhook:
		return map[string]any{
			"path":         "workflow-trigger",
			"httpMethod":   "POST",
			"responseMode": "onReceived",
		}
	case TypeScheduleTrigger:
		return map[string]any{
			"cronExpression": "0 * * * *",
		}
	case TypeManualTrigger:
		return map[string]any{}
	case TypeHTTPRequest:
		return map[string]any{
			"url":    "https://api.example.com/endpoint",
			"method": "GET",
			"headers": map[string]any{
				"Content-Type": "application/json",
			},
		}
	case TypeSlack:
		return map[string]any{
			"channel": "#general",
			"text":    "{{ $json.message }}",
		}
	case TypeEmailSend:
		return map[string]any{
			"toEmail": "team@example.com",
			"subject": "Workflow notification",
			"text":    "{{ $json.summary }}",
		}
	case TypeTelegram:
		return map[string]any{
			"chatId": "@channel",
			"text":   "{{ $json.message }}",
		}
	case TypeSet:
		return map[string]any{
			"values": map[string]any{
				"string": []any{
					map[string]any{"name": "status", "value": "processed"},
				},
			},
		}
	case TypeCode:
		return map[string]any{
			"mode":   "runOnceForAllItems",
			"jsCode": "return $input.all();",
		}
	case TypeIf:
		return map[string]any{
			"conditions": map[string]any{
				"string": []any{
					map[string]any{
						"value1":    "{{ $json.status }}",
						"operation": "equals",
						"value2":    "success",
					},
				},
			},
		}
	case TypeMerge:
		return map[string]any{
			"mode": "append",
		}
	case TypeRSSFeedRead:
		return map[string]any{
			"url": "https://news.example.org/feed.xml",
		}
	case TypeXML:
		return map[string]any{
			"mode":             "xmlToJson",
			"dataPropertyName": "data",
		}
	case TypeOpenAI:
		return map[string]any{
			"model":       "gpt-4o-mini",
			"prompt":      "Summarize: {{ $json.content }}",
			"temperature": 0.7,
		}
	case TypeWordpress:
		return map[string]any{
			"title":   "{{ $json.title }}",
			"content": "{{ $json.content }}",
			"status":  "draft",
		}
	case TypeGoogleSheets:
		return map[string]any{
			"documentId": "spreadsheet-id",
			"sheetName":  "Sheet1",
			"operation":  "append",
		}
	case TypePostgres:
		return map[string]any{
			"operation": "executeQuery",
			"query":     "SELECT 1",
		}
	case TypeRespondToWebhook:
		return map[string]any{
			"respondWith":  "json",
			"responseBody": "{{ $json.result }}",
		}
	case TypeNoOp:
		return map[string]any{}
	default:
		return map[string]any{}
	}
}
