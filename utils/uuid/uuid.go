package uuid

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	uuid2 "github.com/google/uuid"
)

// SnowNode 雪花id生成节点
type SnowNode struct {
	node *snowflake.Node
}

func NewNode(nodeId int64) *SnowNode {
	node, err := snowflake.NewNode(nodeId)
	if err != nil {
		panic(err)
	}
	return &SnowNode{node: node}
}

func (n *SnowNode) GenSnowID() int64 {
	return n.node.Generate().Int64()
}

// GenUUID16 生成16位的请求id
func GenUUID16() string {
	s := strings.ReplaceAll(uuid2.NewString(), "-", "")
	return s[:16]
}
