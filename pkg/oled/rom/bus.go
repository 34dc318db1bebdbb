package rom

// Bus is a synchronous read port over an Image with one tick of latency:
// the address set during a tick is read on that tick's edge and the byte
// shows up on Data the following tick.
type Bus struct {
	im   *Image
	addr int
	next int
	data byte
}

// NewBus returns a read port over im.
func (im *Image) NewBus() *Bus {
	return &Bus{im: im}
}

// SetAddr stages addr for the next tick.
func (b *Bus) SetAddr(addr int) {
	b.next = addr
}

// Data returns the byte read on the previous tick's edge.
func (b *Bus) Data() byte {
	return b.data
}

// Tick latches the read and advances the staged address.
func (b *Bus) Tick() {
	b.data = b.im.At(b.addr)
	b.addr = b.next
}
