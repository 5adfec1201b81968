package domain

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Input payloads are checked for field presence only; everything else is
// left to the backend.

type PostInput struct {
	Title           string     `json:"title"`
	Slug            string     `json:"slug,omitempty"`
	Excerpt         string     `json:"excerpt,omitempty"`
	Content         string     `json:"content,omitempty"`
	FeaturedImage   string     `json:"featured_image,omitempty"`
	Status          Status     `json:"status,omitempty"`
	Category        string     `json:"category,omitempty"`
	Tags            []string   `json:"tags,omitempty"`
	MetaTitle       string     `json:"meta_title,omitempty"`
	MetaDescription string     `json:"meta_description,omitempty"`
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
}

func (in PostInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&in.Status, validation.By(validStatus)),
	)
}

type ContentInput struct {
	ContentType     string   `json:"content_type"`
	Title           string   `json:"title"`
	Slug            string   `json:"slug,omitempty"`
	Excerpt         string   `json:"excerpt,omitempty"`
	Body            string   `json:"body,omitempty"`
	MetaDescription string   `json:"meta_description,omitempty"`
	FeaturedImageID string   `json:"featured_image_id,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	ChangeSummary   string   `json:"change_summary,omitempty"`
}

func (in ContentInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.ContentType, validation.Required),
		validation.Field(&in.Title, validation.Required, validation.Length(1, 255)),
	)
}

type SubscriberInput struct {
	Email  string           `json:"email"`
	Name   string           `json:"name,omitempty"`
	Status SubscriberStatus `json:"status,omitempty"`
	Tags   []string         `json:"tags,omitempty"`
}

func (in SubscriberInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required),
		validation.Field(&in.Status, validation.By(func(value any) error {
			st, _ := value.(SubscriberStatus)
			if st != "" && !st.Valid() {
				return errors.New("unknown subscriber status")
			}
			return nil
		})),
	)
}

type VideoInput struct {
	Title        string           `json:"title"`
	Slug         string           `json:"slug,omitempty"`
	ContentType  VideoContentType `json:"content_type"`
	VideoURL     string           `json:"video_url"`
	ThumbnailURL string           `json:"thumbnail_url,omitempty"`
	TraderID     *int64           `json:"trader_id,omitempty"`
	RoomIDs      []int64          `json:"room_ids,omitempty"`
	IsPublished  bool             `json:"is_published"`
	IsFeatured   bool             `json:"is_featured"`
}

func (in VideoInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required),
		validation.Field(&in.ContentType, validation.Required),
		validation.Field(&in.VideoURL, validation.Required),
	)
}

type IndicatorInput struct {
	Name        string   `json:"name"`
	Slug        string   `json:"slug,omitempty"`
	Description string   `json:"description,omitempty"`
	Platforms   []string `json:"platforms,omitempty"`
	Price       float64  `json:"price"`
	IsActive    bool     `json:"is_active"`
	IsFeatured  bool     `json:"is_featured"`
}

func (in IndicatorInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required),
		validation.Field(&in.Price, validation.Min(0.0)),
	)
}

func validStatus(value any) error {
	st, _ := value.(Status)
	if st != "" && !st.Valid() {
		return errors.New("unknown status")
	}
	return nil
}
