package models

import "github.com/orris-inc/supportdesk/internal/shared/constants"

// TicketModel maps the tickets table. Timestamps are Unix milliseconds.
type TicketModel struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	Title       string `gorm:"type:text;not null"`
	Category    string `gorm:"size:100;not null;index:tickets_category_idx"`
	Description string `gorm:"type:text;not null"`
	Status      string `gorm:"size:20;not null;default:OPEN;index:tickets_status_idx;check:tickets_status_chk,status IN ('OPEN','IN_PROGRESS','CLOSED')"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt   int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (TicketModel) TableName() string {
	return constants.TableTickets
}

// CommentModel maps the comments table. Rows go away with their ticket.
type CommentModel struct {
	ID        uint         `gorm:"primaryKey;autoIncrement"`
	TicketID  uint         `gorm:"not null;index:comments_ticket_id_idx"`
	Ticket    *TicketModel `gorm:"foreignKey:TicketID;references:ID;constraint:OnDelete:CASCADE"`
	Comment   string       `gorm:"column:comment;type:text;not null"`
	CreatedAt int64        `gorm:"autoCreateTime:milli;not null"`
}

func (CommentModel) TableName() string {
	return constants.TableComments
}

// All lists every model in dependency order, for auto-migration.
func All() []interface{} {
	return []interface{}{
		&TicketModel{},
		&CommentModel{},
	}
}
