package models

import "time"

// HomeStats are the headline counters shown on the home page.
type HomeStats struct {
	Jobs         int64 `json:"jobs"`
	Competitions int64 `json:"competitions"`
	Immigration  int64 `json:"immigration"`
	Seekers      int64 `json:"seekers"`
}

// HomeFeed aggregates the first items of each section for the home page.
type HomeFeed struct {
	Mobile           bool              `json:"mobile"`
	JobOffers        []Job             `json:"jobOffers"`
	JobSeekers       []Job             `json:"jobSeekers"`
	Competitions     []Competition     `json:"competitions"`
	ImmigrationPosts []ImmigrationPost `json:"immigrationPosts"`
	Testimonials     []Testimonial     `json:"testimonials"`
	Stats            HomeStats         `json:"stats"`
	GeneratedAt      time.Time         `json:"generatedAt"`
}
