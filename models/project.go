package models

import "time"

// Platforms a project can target.
const (
	PlatformReels  = "reels"
	PlatformTikTok = "tiktok"
	PlatformShorts = "shorts"
)

// DefaultVideoLength is applied when a create request omits videoLength.
const DefaultVideoLength = 15

// Project represents a tracked short-form video production unit.
// JSON field names are the wire contract consumed by the frontend,
// so they stay camelCase in the stored representation as well.
type Project struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Platform    string `json:"platform"`
	VideoLength int    `json:"videoLength"`
	Purpose     string `json:"purpose"`
	Tone        string `json:"tone"`

	KeyPhrase *string `json:"keyPhrase,omitempty"` // Use a pointer for nullable TEXT fields
	Keyword   *string `json:"keyword,omitempty"`

	Script              *string `json:"script,omitempty"`
	ImagePrompt         *string `json:"imagePrompt,omitempty"`
	EnhancedImagePrompt *string `json:"enhancedImagePrompt,omitempty"`
	VideoPrompt         *string `json:"videoPrompt,omitempty"`

	ImageURL *string `json:"imageUrl,omitempty"`
	VideoURL *string `json:"videoUrl,omitempty"`
	AudioURL *string `json:"audioUrl,omitempty"`

	// Workflow milestone flags. The store does not enforce ordering between
	// them; a client may mark videoGenerated before imageGenerated.
	HookGenerated   bool `json:"hookGenerated"`
	ImageGenerated  bool `json:"imageGenerated"`
	VideoGenerated  bool `json:"videoGenerated"`
	AudioGenerated  bool `json:"audioGenerated"`
	EditingComplete bool `json:"editingComplete"`

	CreatedAt time.Time `json:"createdAt"`
}

// ProjectPatch is a partial update. We use pointers so that a field omitted
// from the patch can be told apart from one set to its zero value; omitted
// fields are preserved unchanged on the existing record.
type ProjectPatch struct {
	Title       *string `json:"title,omitempty"`
	Platform    *string `json:"platform,omitempty"`
	VideoLength *int    `json:"videoLength,omitempty"`
	Purpose     *string `json:"purpose,omitempty"`
	Tone        *string `json:"tone,omitempty"`

	KeyPhrase *string `json:"keyPhrase,omitempty"`
	Keyword   *string `json:"keyword,omitempty"`

	Script              *string `json:"script,omitempty"`
	ImagePrompt         *string `json:"imagePrompt,omitempty"`
	EnhancedImagePrompt *string `json:"enhancedImagePrompt,omitempty"`
	VideoPrompt         *string `json:"videoPrompt,omitempty"`

	ImageURL *string `json:"imageUrl,omitempty"`
	VideoURL *string `json:"videoUrl,omitempty"`
	AudioURL *string `json:"audioUrl,omitempty"`

	HookGenerated   *bool `json:"hookGenerated,omitempty"`
	ImageGenerated  *bool `json:"imageGenerated,omitempty"`
	VideoGenerated  *bool `json:"videoGenerated,omitempty"`
	AudioGenerated  *bool `json:"audioGenerated,omitempty"`
	EditingComplete *bool `json:"editingComplete,omitempty"`
}

// Apply merges the patch onto p. ID and CreatedAt are never touched.
func (patch ProjectPatch) Apply(p *Project) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Platform != nil {
		p.Platform = *patch.Platform
	}
	if patch.VideoLength != nil {
		p.VideoLength = *patch.VideoLength
	}
	if patch.Purpose != nil {
		p.Purpose = *patch.Purpose
	}
	if patch.Tone != nil {
		p.Tone = *patch.Tone
	}
	if patch.KeyPhrase != nil {
		p.KeyPhrase = patch.KeyPhrase
	}
	if patch.Keyword != nil {
		p.Keyword = patch.Keyword
	}
	if patch.Script != nil {
		p.Script = patch.Script
	}
	if patch.ImagePrompt != nil {
		p.ImagePrompt = patch.ImagePrompt
	}
	if patch.EnhancedImagePrompt != nil {
		p.EnhancedImagePrompt = patch.EnhancedImagePrompt
	}
	if patch.VideoPrompt != nil {
		p.VideoPrompt = patch.VideoPrompt
	}
	if patch.ImageURL != nil {
		p.ImageURL = patch.ImageURL
	}
	if patch.VideoURL != nil {
		p.VideoURL = patch.VideoURL
	}
	if patch.AudioURL != nil {
		p.AudioURL = patch.AudioURL
	}
	if patch.HookGenerated != nil {
		p.HookGenerated = *patch.HookGenerated
	}
	if patch.ImageGenerated != nil {
		p.ImageGenerated = *patch.ImageGenerated
	}
	if patch.VideoGenerated != nil {
		p.VideoGenerated = *patch.VideoGenerated
	}
	if patch.AudioGenerated != nil {
		p.AudioGenerated = *patch.AudioGenerated
	}
	if patch.EditingComplete != nil {
		p.EditingComplete = *patch.EditingComplete
	}
}
