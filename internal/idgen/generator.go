package idgen

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// NumberSource hands out ticket numbers that never repeat.
type NumberSource interface {
	Next() string
}

// TicketNumbers renders snowflake ids as prefix + upper-case base 36,
// e.g. "TKT1B2C3D4E5F6G". nodeID (0-1023) must differ between running
// instances; snowflake.Node serializes Generate itself.
type TicketNumbers struct {
	node   *snowflake.Node
	prefix string
}

func NewTicketNumbers(nodeID int64, prefix string) (*TicketNumbers, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("create snowflake node %d: %w", nodeID, err)
	}
	return &TicketNumbers{node: node, prefix: prefix}, nil
}

func (t *TicketNumbers) Next() string {
	return t.prefix + strings.ToUpper(t.node.Generate().Base36())
}

var _ NumberSource = (*TicketNumbers)(nil)
