package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BootcampStatusDraft     = "draft"
	BootcampStatusPublished = "published"
	BootcampStatusFinished  = "finished"
)

type BootcampModel struct {
	BootcampID    uuid.UUID `gorm:"column:bootcamp_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"bootcamp_id"`
	BootcampTitle string    `gorm:"column:bootcamp_title;type:varchar(255);not null" json:"bootcamp_title"`
	BootcampSlug  string    `gorm:"column:bootcamp_slug;type:varchar(255);not null;uniqueIndex" json:"bootcamp_slug"`

	BootcampDescription string  `gorm:"column:bootcamp_description;type:text" json:"bootcamp_description"`
	BootcampThumbnail   *string `gorm:"column:bootcamp_thumbnail;type:text" json:"bootcamp_thumbnail,omitempty"`
	BootcampLocation    string  `gorm:"column:bootcamp_location;type:varchar(255)" json:"bootcamp_location"`
	BootcampPriceIDR    int     `gorm:"column:bootcamp_price_idr;not null;default:0;check:bootcamp_price_idr >= 0" json:"bootcamp_price_idr"`

	BootcampSeat       int `gorm:"column:bootcamp_seat;not null;default:0;check:bootcamp_seat >= 0" json:"bootcamp_seat"`
	BootcampSeatBooked int `gorm:"column:bootcamp_seat_booked;not null;default:0;check:bootcamp_seat_booked >= 0" json:"bootcamp_seat_booked"`

	BootcampStartAt *time.Time `gorm:"column:bootcamp_start_at" json:"bootcamp_start_at,omitempty"`
	BootcampEndAt   *time.Time `gorm:"column:bootcamp_end_at" json:"bootcamp_end_at,omitempty"`
	BootcampStatus  string     `gorm:"column:bootcamp_status;type:varchar(20);not null;default:'draft'" json:"bootcamp_status"`

	BootcampCreatedAt time.Time      `gorm:"column:bootcamp_created_at;autoCreateTime" json:"bootcamp_created_at"`
	BootcampUpdatedAt time.Time      `gorm:"column:bootcamp_updated_at;autoUpdateTime" json:"bootcamp_updated_at"`
	BootcampDeletedAt gorm.DeletedAt `gorm:"column:bootcamp_deleted_at;index" json:"bootcamp_deleted_at,omitempty"`
}

func (BootcampModel) TableName() string {
	return "bootcamps"
}

func (m *BootcampModel) SeatsLeft() int {
	left := m.BootcampSeat - m.BootcampSeatBooked
	if left < 0 {
		return 0
	}
	return left
}
