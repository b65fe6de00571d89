package encodedvalue

import (
	"github.com/lintang-b-s/navigatorx-curvature/pkg/util"
)

// InitializerConfig. hands out bit positions inside the edge block, word by word.
type InitializerConfig struct {
	dataIndex int
	nextShift int
	used      bool
}

func (c *InitializerConfig) next(bits int) (int, int) {
	if c.nextShift+bits > maxBits {
		c.dataIndex++
		c.nextShift = 0
	}
	shift := c.nextShift
	c.nextShift += bits
	c.used = true
	return c.dataIndex, shift
}

func (c *InitializerConfig) requiredInts() int {
	if !c.used {
		return 0
	}
	return c.dataIndex + 1
}

type ManagerBuilder struct {
	values []EncodedValue
}

func NewManagerBuilder() *ManagerBuilder {
	return &ManagerBuilder{values: make([]EncodedValue, 0)}
}

func (b *ManagerBuilder) Add(values ...EncodedValue) *ManagerBuilder {
	b.values = append(b.values, values...)
	return b
}

// Build. assign every added value its bit position, in insertion order.
func (b *ManagerBuilder) Build() (*Manager, error) {
	m := &Manager{
		values: make(map[string]EncodedValue, len(b.values)),
		order:  make([]EncodedValue, 0, len(b.values)),
	}
	cfg := &InitializerConfig{}
	for _, ev := range b.values {
		if ev == nil {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "nil encoded value")
		}
		if _, ok := m.values[ev.GetName()]; ok {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "duplicate encoded value %s", ev.GetName())
		}
		if err := ev.init(cfg); err != nil {
			return nil, err
		}
		m.values[ev.GetName()] = ev
		m.order = append(m.order, ev)
	}
	m.intsPerEdge = cfg.requiredInts()
	return m, nil
}

// Manager. registry of the encoded values sharing one edge attribute block.
type Manager struct {
	values      map[string]EncodedValue
	order       []EncodedValue
	intsPerEdge int
}

func (m *Manager) IntsPerEdge() int {
	return m.intsPerEdge
}

func (m *Manager) BytesForFlags() int {
	return m.intsPerEdge * 4
}

func (m *Manager) EncodedValues() []EncodedValue {
	return m.order
}

func (m *Manager) HasEncodedValue(name string) bool {
	_, ok := m.values[name]
	return ok
}

func (m *Manager) GetIntEncodedValue(name string) (*IntEncodedValue, error) {
	ev, ok := m.values[name]
	if !ok {
		return nil, util.WrapErrorf(nil, util.ErrNotFound, "encoded value %s not found", name)
	}
	intEv, ok := ev.(*IntEncodedValue)
	if !ok {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "encoded value %s is not an int encoded value", name)
	}
	return intEv, nil
}

func (m *Manager) GetDecimalEncodedValue(name string) (*DecimalEncodedValue, error) {
	ev, ok := m.values[name]
	if !ok {
		return nil, util.WrapErrorf(nil, util.ErrNotFound, "encoded value %s not found", name)
	}
	decEv, ok := ev.(*DecimalEncodedValue)
	if !ok {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "encoded value %s is not a decimal encoded value", name)
	}
	return decEv, nil
}
