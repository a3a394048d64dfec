package dispatch_port

//go:generate go run go.uber.org/mock/mockgen -source=dispatch_port.go -destination=../../mocks/mock_dispatch_port.go -package=mocks

// DispatcherPort runs callbacks on the render turn.
type DispatcherPort interface {
	// Post queues fn and reports false when the dispatcher no longer accepts work
	Post(fn func()) bool
}
