package dataset

// Role tags a message within a training record.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single role-tagged turn.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Record is one fine-tuning example: persona, synthesized query, response.
type Record struct {
	Messages []Message `json:"messages"`
}

// Dataset is the ordered output of a build, one record per response file.
type Dataset []Record

// NewRecord assembles the three-turn conversation. The response is used as-is.
func NewRecord(persona, query, response string) Record {
	return Record{
		Messages: []Message{
			{Role: RoleSystem, Content: persona},
			{Role: RoleUser, Content: query},
			{Role: RoleAssistant, Content: response},
		},
	}
}
