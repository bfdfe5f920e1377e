package model

import "time"

// Active tickets are everything except these two terminal statuses.
const (
	StatusResolvedOnTime = "Resuelto a Tiempo"
	StatusResolvedLate   = "Resuelto Fuera de Tiempo"
)

// Ticket mirrors the tickets table of the helpdesk store. This service only
// reads it; writes happen in the upstream ticketing system.
type Ticket struct {
	IDTicket     string     `gorm:"column:id_ticket;primaryKey" json:"id_ticket"`
	CategoryName string     `gorm:"column:category_name;index" json:"category_name,omitempty"`
	StatusName   string     `gorm:"column:status_name;index" json:"status_name,omitempty"`
	SiteName     string     `gorm:"column:site_name" json:"site_name,omitempty"`
	OriginName   string     `gorm:"column:origin_name" json:"origin_name,omitempty"`
	StaffPrio    string     `gorm:"column:staff_priority" json:"staff_priority,omitempty"`
	TodDate      *time.Time `gorm:"column:tod_date;index" json:"tod_date,omitempty"`
	CreateDate   *time.Time `gorm:"column:create_date" json:"create_date,omitempty"`
	StartDate    *time.Time `gorm:"column:start_date" json:"start_date,omitempty"`
	ResDate      *time.Time `gorm:"column:res_date" json:"res_date,omitempty"`
	SLAFlag      string     `gorm:"column:sla_flag" json:"sla_flag,omitempty"`
	SLAAteMinu   *int       `gorm:"column:sla_ate_minu" json:"sla_ate_minu,omitempty"`
	SLAResMinu   *int       `gorm:"column:sla_res_minu" json:"sla_res_minu,omitempty"`
	SLAExpMinu   *int       `gorm:"column:sla_exp_minu" json:"sla_exp_minu,omitempty"`
	TicketTitle  string     `gorm:"column:ticket_title" json:"ticket_title,omitempty"`
	TicketDetail string     `gorm:"column:ticket_detail;type:text" json:"ticket_detail,omitempty"`
	ResNote      string     `gorm:"column:ticket_res_note;type:text" json:"ticket_res_note,omitempty"`
	Cause        string     `gorm:"column:ticket_cause;type:text" json:"ticket_cause,omitempty"`
	StaffAsigned string     `gorm:"column:staff_asigned" json:"staff_asigned,omitempty"`
	StaffTIHead  string     `gorm:"column:staff_ti_head" json:"staff_ti_head,omitempty"`
	ResVal       *float64   `gorm:"column:res_val" json:"res_val,omitempty"`
	ResValNote   string     `gorm:"column:res_val_note;type:text" json:"res_val_note,omitempty"`
	ResValClass  string     `gorm:"column:res_val_class" json:"res_val_class,omitempty"`
}

func (Ticket) TableName() string { return "tickets" }

// TicketSummary is the projection returned by the ticket search endpoint.
type TicketSummary struct {
	IDTicket     string     `gorm:"column:id_ticket" json:"id_ticket"`
	TicketTitle  string     `gorm:"column:ticket_title" json:"ticket_title,omitempty"`
	StatusName   string     `gorm:"column:status_name" json:"status_name,omitempty"`
	CategoryName string     `gorm:"column:category_name" json:"category_name,omitempty"`
	TodDate      *time.Time `gorm:"column:tod_date" json:"tod_date,omitempty"`
}

// Feedback is an append-only user rating of the dashboard. No update or
// delete path exists.
type Feedback struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   *string   `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (Feedback) TableName() string { return "ti_feedback" }
