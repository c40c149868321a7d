package model

import "time"

type AuditAction string

const (
	AuditActionCreateProduct     AuditAction = "CREATE_PRODUCT"
	AuditActionUpdateProduct     AuditAction = "UPDATE_PRODUCT"
	AuditActionDeleteProduct     AuditAction = "DELETE_PRODUCT"
	AuditActionUpdateStock       AuditAction = "UPDATE_STOCK"
	AuditActionUpdateOrderStatus AuditAction = "UPDATE_ORDER_STATUS"
)

type AuditResourceType string

const (
	AuditResourceProduct AuditResourceType = "product"
	AuditResourceOrder   AuditResourceType = "order"
)

// AuditLog records who changed what through the bakery portal.
// Before/after states are stored as JSON strings.
type AuditLog struct {
	ID            int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorBakeryID int64             `gorm:"not null;index" json:"actor_bakery_id"`
	Action        AuditAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType  AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`
	ResourceID    int64             `gorm:"not null;index" json:"resource_id"`
	BeforeJSON    string            `gorm:"type:text" json:"before_json"`
	AfterJSON     string            `gorm:"type:text" json:"after_json"`
	CreatedAt     time.Time         `gorm:"not null;autoCreateTime;index" json:"created_at"`
}
