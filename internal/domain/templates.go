package domain

// ExerciseTemplate is a catalog entry users can pick from instead of typing
// a free-text exercise name.
type ExerciseTemplate struct {
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	MuscleGroups  []string `json:"muscleGroups"`
	FormKeyPoints []string `json:"formKeyPoints"`
	Description   string   `json:"description"`
}

// exerciseTemplates is the built-in movement catalog.
var exerciseTemplates = []ExerciseTemplate{
	{
		Name:         "Barbell Back Squat",
		Category:     "Legs",
		MuscleGroups: []string{"Quadriceps", "Glutes", "Hamstrings", "Core"},
		FormKeyPoints: []string{
			"Feet shoulder-width apart",
			"Knees track over toes",
			"Chest up, neutral spine",
			"Depth to parallel or below",
			"Drive through heels",
		},
		Description: "Compound lower body exercise with barbell on upper back",
	},
	{
		Name:         "Goblet Squat",
		Category:     "Legs",
		MuscleGroups: []string{"Quadriceps", "Glutes", "Core"},
		FormKeyPoints: []string{
			"Hold weight at chest height",
			"Elbows between knees at bottom",
			"Upright torso",
			"Full depth squat",
		},
		Description: "Beginner-friendly squat variation holding weight at chest",
	},
	{
		Name:         "Conventional Deadlift",
		Category:     "Back",
		MuscleGroups: []string{"Hamstrings", "Glutes", "Lower Back", "Traps"},
		FormKeyPoints: []string{
			"Neutral spine throughout",
			"Hinge at hips, not spine",
			"Bar stays close to body",
			"Lock out hips and knees together",
			"Shoulders over bar at start",
		},
		Description: "Hip hinge movement lifting barbell from floor",
	},
	{
		Name:         "Romanian Deadlift",
		Category:     "Legs",
		MuscleGroups: []string{"Hamstrings", "Glutes", "Lower Back"},
		FormKeyPoints: []string{
			"Slight knee bend maintained",
			"Hinge at hips, push hips back",
			"Feel stretch in hamstrings",
			"Neutral spine",
		},
		Description: "Hip hinge targeting hamstrings with minimal knee bend",
	},
	{
		Name:         "Barbell Bench Press",
		Category:     "Chest",
		MuscleGroups: []string{"Chest", "Triceps", "Front Delts"},
		FormKeyPoints: []string{
			"Shoulder blades retracted",
			"Feet planted on floor",
			"Bar touches mid-chest",
			"Wrists stacked over elbows",
		},
		Description: "Horizontal press lying on a flat bench",
	},
	{
		Name:         "Overhead Press",
		Category:     "Shoulders",
		MuscleGroups: []string{"Shoulders", "Triceps", "Core"},
		FormKeyPoints: []string{
			"Glutes and core braced",
			"Bar path close to face",
			"Full lockout overhead",
			"No excessive back lean",
		},
		Description: "Standing barbell press from shoulders to overhead",
	},
	{
		Name:         "Barbell Row",
		Category:     "Back",
		MuscleGroups: []string{"Lats", "Rhomboids", "Biceps"},
		FormKeyPoints: []string{
			"Hinged torso, flat back",
			"Pull bar to lower ribs",
			"Squeeze shoulder blades",
			"No momentum from hips",
		},
		Description: "Bent-over horizontal pull with a barbell",
	},
	{
		Name:         "Pull-Up",
		Category:     "Back",
		MuscleGroups: []string{"Lats", "Biceps", "Core"},
		FormKeyPoints: []string{
			"Full hang at bottom",
			"Chin clears the bar",
			"Controlled descent",
			"No kipping",
		},
		Description: "Bodyweight vertical pull from a dead hang",
	},
	{
		Name:         "Walking Lunge",
		Category:     "Legs",
		MuscleGroups: []string{"Quadriceps", "Glutes", "Core"},
		FormKeyPoints: []string{
			"Front knee tracks over toes",
			"Back knee hovers above floor",
			"Upright torso",
			"Push through front heel",
		},
		Description: "Alternating forward lunges covering distance",
	},
	{
		Name:         "Plank",
		Category:     "Core",
		MuscleGroups: []string{"Core", "Shoulders", "Glutes"},
		FormKeyPoints: []string{
			"Straight line head to heels",
			"Elbows under shoulders",
			"Glutes squeezed",
			"No sagging hips",
		},
		Description: "Isometric hold on forearms and toes",
	},
}

// Templates returns a copy of the built-in exercise catalog.
func Templates() []ExerciseTemplate {
	out := make([]ExerciseTemplate, len(exerciseTemplates))
	copy(out, exerciseTemplates)
	return out
}

// TemplateByName looks up a catalog entry by its exact name.
func TemplateByName(name string) (ExerciseTemplate, bool) {
	for _, t := range exerciseTemplates {
		if t.Name == name {
			return t, true
		}
	}
	return ExerciseTemplate{}, false
}

// TemplatesByCategory returns all catalog entries in the given category.
func TemplatesByCategory(category string) []ExerciseTemplate {
	var out []ExerciseTemplate
	for _, t := range exerciseTemplates {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}
