package content

import "strings"

// Populate substitutes {{name}} placeholders in the template structure with
// the provided values. Unknown placeholders are left in place so the gap is
// visible to the caller rather than silently dropped.
func Populate(t Template, variables map[string]string) string {
	populated := t.Structure
	for name, value := range variables {
		populated = strings.ReplaceAll(populated, "{{"+name+"}}", value)
	}
	return populated
}

// DefaultTemplates returns the built-in template set used when no template
// store is configured or the store is unavailable. The slice is freshly
// allocated on each call; callers may modify it.
func DefaultTemplates() []Template {
	return []Template{
		{
			ID:          "professional_insight",
			Name:        "Professional Insight",
			Description: "Share a professional insight or lesson learned",
			ContentType: TypePost,
			Structure: `{{hook_question}}

Here's what I've learned: {{main_insight}}

{{supporting_details}}

{{call_to_action}}

What's your experience with this? 👇`,
			Variables: map[string]string{
				"hook_question":      "Engaging question to start",
				"main_insight":       "Core lesson or insight",
				"supporting_details": "Details and examples",
				"call_to_action":     "Engagement prompt",
			},
			IndustryTags: []string{"technology", "business", "marketing", "finance"},
			UseCase:      "thought_leadership",
		},
		{
			ID:          "personal_story",
			Name:        "Personal Story",
			Description: "Share a personal experience with professional relevance",
			ContentType: TypePost,
			Structure: `{{time_context}} ago, {{situation_setup}}

{{challenge_faced}}

Here's what happened: {{story_development}}

The lesson? {{key_takeaway}}

{{broader_application}}`,
			Variables: map[string]string{
				"time_context":        "When this happened",
				"situation_setup":     "Context of the situation",
				"challenge_faced":     "What challenge you faced",
				"story_development":   "How the situation unfolded",
				"key_takeaway":        "Main lesson learned",
				"broader_application": "How others can apply this",
			},
			IndustryTags: []string{"leadership", "career", "entrepreneurship"},
			UseCase:      "personal_story",
		},
		{
			ID:          "industry_commentary",
			Name:        "Industry Commentary",
			Description: "Comment on industry trends or news",
			ContentType: TypePost,
			Structure: `{{trend_observation}}

Why this matters: {{significance}}

{{personal_perspective}}

My prediction: {{future_outlook}}

Thoughts? What are you seeing in your experience?`,
			Variables: map[string]string{
				"trend_observation":    "What trend you're commenting on",
				"significance":         "Why this trend is important",
				"personal_perspective": "Your unique take on it",
				"future_outlook":       "Where you see this heading",
			},
			IndustryTags: []string{"technology", "business", "marketing", "finance"},
			UseCase:      "thought_leadership",
		},
		{
			ID:          "career_milestone",
			Name:        "Career Milestone Achievement",
			Description: "Celebrate a career achievement or milestone",
			ContentType: TypePost,
			Structure: `🎉 {{achievement_announcement}}

{{journey_reflection}}

Key takeaways from this experience:
{{key_learnings}}

{{gratitude_section}}

{{future_focus}}

#CareerGrowth #Achievement`,
			Variables: map[string]string{
				"achievement_announcement": "The achievement being celebrated",
				"journey_reflection":       "Brief reflection on the journey",
				"key_learnings":            "What was learned along the way",
				"gratitude_section":        "Thanking people who helped",
				"future_focus":             "What comes next",
			},
			IndustryTags: []string{"career", "leadership", "business"},
			UseCase:      "personal_update",
		},
		{
			ID:          "problem_solution",
			Name:        "Problem-Solution Case Study",
			Description: "Present a business problem and solution approach",
			ContentType: TypePost,
			Structure: `The Challenge: {{problem_description}}

The stakes were high: {{impact_explanation}}

Our approach: {{solution_strategy}}

Results: {{outcomes_achieved}}

The key insight? {{main_lesson}}

How do you tackle similar challenges in your industry?`,
			Variables: map[string]string{
				"problem_description": "The business problem faced",
				"impact_explanation":  "Why this problem mattered",
				"solution_strategy":   "How the problem was approached",
				"outcomes_achieved":   "What results were achieved",
				"main_lesson":         "Key insight from the experience",
			},
			IndustryTags: []string{"business", "consulting", "strategy"},
			UseCase:      "thought_leadership",
		},
		{
			ID:          "learning_development",
			Name:        "Learning & Development Update",
			Description: "Share learning experiences and professional development",
			ContentType: TypePost,
			Structure: `📚 {{learning_context}}

{{new_knowledge}}

How I'm applying this: {{practical_application}}

{{results_or_insights}}

{{encouragement_to_others}}

What's the most valuable thing you've learned recently?`,
			Variables: map[string]string{
				"learning_context":        "What you've been learning",
				"new_knowledge":           "Key concepts or skills gained",
				"practical_application":   "How you're using this knowledge",
				"results_or_insights":     "Outcomes or insights from application",
				"encouragement_to_others": "Motivating others to learn",
			},
			IndustryTags: []string{"education", "career", "development"},
			UseCase:      "personal_update",
		},
		{
			ID:          "quick_tip",
			Name:        "Quick Professional Tips",
			Description: "Share actionable professional advice",
			ContentType: TypePost,
			Structure: `💡 Quick tip: {{main_tip}}

Why this works:
{{explanation}}

How to implement:
{{implementation_steps}}

{{additional_context}}

Try this and let me know how it goes!

#ProfessionalTips #ProductivityHack`,
			Variables: map[string]string{
				"main_tip":             "The core tip being shared",
				"explanation":          "Why this tip is effective",
				"implementation_steps": "How to put it into practice",
				"additional_context":   "Extra context or examples",
			},
			IndustryTags: []string{"productivity", "business", "career"},
			UseCase:      "professional_advice",
		},
		{
			ID:          "networking_connection",
			Name:        "Networking Connection Request",
			Description: "Professional networking and connection posts",
			ContentType: TypePost,
			Structure: `{{connection_context}}

{{value_proposition}}

{{mutual_benefit}}

{{call_to_connect}}

Looking forward to building meaningful professional relationships!

#Networking #ProfessionalConnections`,
			Variables: map[string]string{
				"connection_context": "Context for wanting to connect",
				"value_proposition":  "What value you can provide",
				"mutual_benefit":     "How connection benefits both parties",
				"call_to_connect":    "Invitation to connect",
			},
			IndustryTags: []string{"networking", "business", "career"},
			UseCase:      "networking",
		},
		{
			ID:          "thought_leadership_long",
			Name:        "Thought Leadership Article",
			Description: "In-depth thought leadership content",
			ContentType: TypeArticle,
			Structure: `# {{article_title}}

{{hook_introduction}}

## The Current Landscape
{{current_state_analysis}}

## The Challenge
{{problem_identification}}

## A Different Perspective
{{unique_viewpoint}}

## Practical Implications
{{actionable_insights}}

## Looking Forward
{{future_predictions}}

## Conclusion
{{key_takeaways}}

What's your take on this? I'd love to hear different perspectives in the comments.`,
			Variables: map[string]string{
				"article_title":          "Compelling article title",
				"hook_introduction":      "Engaging opening that hooks readers",
				"current_state_analysis": "Analysis of current situation",
				"problem_identification": "Key challenges identified",
				"unique_viewpoint":       "Your unique perspective",
				"actionable_insights":    "Practical advice readers can use",
				"future_predictions":     "Predictions about future trends",
				"key_takeaways":          "Main points to remember",
			},
			IndustryTags: []string{"leadership", "strategy", "innovation"},
			UseCase:      "thought_leadership",
		},
		{
			ID:          "company_update",
			Name:        "Company News Announcement",
			Description: "Share company news and updates professionally",
			ContentType: TypePost,
			Structure: `🚀 {{announcement_headline}}

{{news_details}}

What this means: {{significance_explanation}}

{{personal_reflection}}

{{future_implications}}

Excited to see what comes next! {{closing_sentiment}}

#CompanyNews #ProfessionalUpdate`,
			Variables: map[string]string{
				"announcement_headline":    "Main announcement",
				"news_details":             "Details about the news",
				"significance_explanation": "Why this news matters",
				"personal_reflection":      "Your thoughts on the news",
				"future_implications":      "What this means going forward",
				"closing_sentiment":        "Positive closing thought",
			},
			IndustryTags: []string{"business", "company", "updates"},
			UseCase:      "company_news",
		},
	}
}
