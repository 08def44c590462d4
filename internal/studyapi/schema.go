package studyapi

// problemProperties is the shape of one generated practice problem.
var problemProperties = map[string]any{
	"id":        map[string]any{"type": "string"},
	"course_id": map[string]any{"type": "string"},
	"topic":     map[string]any{"type": "string"},
	"difficulty": map[string]any{
		"type": "string",
		"enum": []any{"easy", "medium", "hard"},
	},
	"question_type": map[string]any{
		"type": "string",
		"enum": []any{"multiple_choice", "free_response", "coding"},
	},
	"question_text": map[string]any{"type": "string", "minLength": 1},
	"answer":        map[string]any{"type": "string"},
	"explanation":   map[string]any{"type": "string"},
}

// problemListSchema validates the practice-problem generation payload.
var problemListSchema = &Schema{
	Name: "practice-problem-list",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type":       "object",
			"properties": problemProperties,
			"required":   []any{"id", "course_id", "question_type", "question_text", "answer"},
		},
	},
}

// studyGuideSchema validates the study-guide generation payload.
var studyGuideSchema = &Schema{
	Name: "study-guide",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":        map[string]any{"type": "string"},
			"course_id": map[string]any{"type": "string"},
			"topic":     map[string]any{"type": "string"},
			"content":   map[string]any{"type": "string", "minLength": 1},
		},
		"required": []any{"course_id", "content"},
	},
}

// instructorReportSchema validates the instructor-report payload.
var instructorReportSchema = &Schema{
	Name: "instructor-report",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"course_id": map[string]any{"type": "string"},
			"report":    map[string]any{"type": "string", "minLength": 1},
		},
		"required": []any{"report"},
	},
}
