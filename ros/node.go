package ros

import (
	"github.com/bluenviron/goroslib/v2"
	"github.com/pkg/errors"
)

// DefaultNodeName is used when a NodeConf leaves Name empty.
const DefaultNodeName = "viam_ros_display"

type NodeConf struct {
	MasterAddress string
	Namespace     string
	Name          string
}

func (c NodeConf) goroslibConf() goroslib.NodeConf {
	name := c.Name
	if name == "" {
		name = DefaultNodeName
	}
	return goroslib.NodeConf{
		Namespace:     c.Namespace,
		Name:          name,
		MasterAddress: c.MasterAddress,
	}
}

// NewNode connects a goroslib node to the master in conf.
func NewNode(conf NodeConf) (*goroslib.Node, error) {
	if conf.MasterAddress == "" {
		return nil, errors.New("ROS master address must be set to hostname:port")
	}
	n, err := goroslib.NewNode(conf.goroslibConf())
	if err != nil {
		return nil, errors.Wrapf(err, "connecting to ROS master %s", conf.MasterAddress)
	}
	return n, nil
}
