// Package viamrosnode shares one goroslib node per ROS master across all
// components of the module.
package viamrosnode

import (
	"strings"
	"sync"

	"github.com/bluenviron/goroslib/v2"

	"github.com/brokenrobotz/viam-ros-display/ros"
)

var (
	mu    sync.Mutex
	nodes = map[string]*goroslib.Node{}

	newNode = ros.NewNode
)

// GetInstance returns the node connected to primaryUri, creating it on first use.
func GetInstance(primaryUri string) (*goroslib.Node, error) {
	primaryUri = strings.TrimSpace(primaryUri)

	mu.Lock()
	defer mu.Unlock()
	if n, ok := nodes[primaryUri]; ok {
		return n, nil
	}
	n, err := newNode(ros.NodeConf{MasterAddress: primaryUri})
	if err != nil {
		return nil, err
	}
	nodes[primaryUri] = n
	return n, nil
}

// CloseAll shuts down every shared node.
func CloseAll() {
	mu.Lock()
	defer mu.Unlock()
	for uri, n := range nodes {
		n.Close()
		delete(nodes, uri)
	}
}
