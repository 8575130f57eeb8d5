package constants

// Order status values.
const (
	OrderStatusOpen      = "open"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order type values. The type decides which delivery fields are mandatory.
const (
	OrderTypeLocal    = "local"
	OrderTypeTakeout  = "takeout"
	OrderTypeDelivery = "delivery"
)

// Payment method values.
const (
	PaymentMethodCash     = "cash"
	PaymentMethodCard     = "card"
	PaymentMethodTransfer = "transfer"
)

// Staff roles.
const (
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
	RoleWaiter  = "waiter"
)

// Queue and task names.
const (
	QueueDefault         = "default"
	TaskTicketRender     = "ticket:render"
	TaskStaleOrderCancel = "order:stale_cancel"
)

// MenuCategoryAll is the pseudo category that disables category filtering.
const MenuCategoryAll = "Todos"

// DefaultCustomerName is used when an order carries no explicit customer.
const DefaultCustomerName = "Cliente General"
