package event

// Event đại diện cho một sự kiện trong hệ thống
type Event struct {
	Topic string      // Ví dụ: "orders", "order:DH-ABC123"
	Type  string      // Loại sự kiện: order_created, order_paid, low_stock
	Data  interface{} // Dữ liệu sự kiện (tùy thuộc loại)
}

const (
	TopicOrders = "orders" // Luồng đơn hàng chung cho màn hình quầy

	EventTypeOrderCreated = "order_created" // Đơn mới được tạo ở quầy
	EventTypeOrderPaid    = "order_paid"    // Webhook ngân hàng xác nhận chuyển khoản
	EventTypeLowStock     = "low_stock"     // Mặt hàng chạm ngưỡng tồn kho tối thiểu
)

// EventSender là interface cho đại diện cho server gửi sự kiện đến client
type EventSender interface {
	Register(topic string, client chan Event)
	Unregister(topic string, client chan Event)
	Broadcast(event Event)
	Run()
}
