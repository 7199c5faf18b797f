package TaskGen

// TaskCount is how many tasks every daily set carries.
const TaskCount = 3

// TaskCandidate is the transient parse result before a task is finalized.
type TaskCandidate struct {
	Title      string `json:"title"`
	TotalCount int    `json:"totalCount"`
}

// BuildPrompt returns the instruction text sent to the generation endpoint.
// The endpoint is free-form text completion, so the expected output shape is
// spelled out in the prompt itself and enforced later by the parser.
func BuildPrompt() string {
	return `You are generating daily photo challenges for a mobile app where users complete photo-capture tasks.

Generate exactly 3 photo tasks. Requirements:
- Each task must come from a DIFFERENT category. Categories include: nature, food, architecture, people, pets, colors, objects, light and shadow, motion, reflections.
- Each title must be unique, short (max 8 words) and in English.
- Each task has a totalCount: how many photos the user should take (1 to 3, usually 1).
- Tasks must be doable by anyone with a phone camera in a single day.

Respond ONLY with a JSON array, no markdown and no explanation, in this exact shape:
[{"title": "Photograph a red door", "totalCount": 1}, {"title": "Capture your lunch from above", "totalCount": 1}, {"title": "Shoot three different shadows", "totalCount": 3}]`
}

// FallbackPool backfills a day's set when generation under-produces. Order
// matters: entries are taken front to back.
var FallbackPool = []TaskCandidate{
	{Title: "Photograph something red", TotalCount: 1},
	{Title: "Capture your favorite meal", TotalCount: 1},
	{Title: "Take a photo of the sky", TotalCount: 1},
	{Title: "Shoot an interesting building", TotalCount: 1},
	{Title: "Photograph your pet or a street animal", TotalCount: 1},
	{Title: "Capture a reflection", TotalCount: 1},
	{Title: "Take three photos of things that make you smile", TotalCount: 3},
	{Title: "Photograph something older than you", TotalCount: 1},
	{Title: "Capture motion blur", TotalCount: 1},
	{Title: "Shoot a close-up of a texture", TotalCount: 1},
	{Title: "Photograph your view right now", TotalCount: 1},
	{Title: "Capture two contrasting colors", TotalCount: 2},
}
