package sensors

import (
	"context"
	"errors"
	"github.com/bluenviron/goroslib/v2"
	"github.com/bluenviron/goroslib/v2/pkg/msgs/sensor_msgs"
	"github.com/brokenrobotz/viam-ros-display/viamrosnode"
	"go.viam.com/rdk/components/sensor"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/resource"
	"strings"
	"sync"
)

var JointStatesModel = resource.NewModel("brokenrobotz", "ros", "joint_states")

// DefaultJointStatesTopic is where both joint state publishers write.
const DefaultJointStatesTopic = "/joint_states"

type JointStateSensor struct {
	resource.Named

	mu         sync.Mutex
	primaryUri string
	topic      string
	node       *goroslib.Node
	subscriber *goroslib.Subscriber
	logger     logging.Logger

	// msgMu is separate from mu so callbacks never wait on Reconfigure,
	// which holds mu while closing the subscriber.
	msgMu sync.Mutex
	msg   *sensor_msgs.JointState
}

func init() {
	resource.RegisterComponent(
		sensor.API,
		JointStatesModel,
		resource.Registration[sensor.Sensor, *JointStateSensorConfig]{
			Constructor: NewJointStateSensor,
		},
	)
}

func NewJointStateSensor(
	ctx context.Context,
	deps resource.Dependencies,
	conf resource.Config,
	logger logging.Logger,
) (sensor.Sensor, error) {
	j := &JointStateSensor{
		Named:  conf.ResourceName().AsNamed(),
		logger: logger,
	}

	if err := j.Reconfigure(ctx, deps, conf); err != nil {
		return nil, err
	}

	return j, nil
}

func (j *JointStateSensor) Reconfigure(
	_ context.Context,
	_ resource.Dependencies,
	conf resource.Config,
) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.primaryUri = conf.Attributes.String("primary_uri")
	j.topic = conf.Attributes.String("topic")

	if len(strings.TrimSpace(j.primaryUri)) == 0 {
		return errors.New("ROS primary uri must be set to hostname:port")
	}

	if len(strings.TrimSpace(j.topic)) == 0 {
		j.topic = DefaultJointStatesTopic
	}

	if j.subscriber != nil {
		j.subscriber.Close()
	}
	j.msgMu.Lock()
	j.msg = nil
	j.msgMu.Unlock()

	var err error
	j.node, err = viamrosnode.GetInstance(j.primaryUri)
	if err != nil {
		return err
	}

	j.subscriber, err = goroslib.NewSubscriber(goroslib.SubscriberConf{
		Node:     j.node,
		Topic:    j.topic,
		Callback: j.processMessage,
	})
	if err != nil {
		return err
	}

	j.logger.Infow("subscribed to joint states", "topic", j.topic)
	return nil
}

func (j *JointStateSensor) processMessage(msg *sensor_msgs.JointState) {
	j.msgMu.Lock()
	defer j.msgMu.Unlock()
	j.msg = msg
}

func (j *JointStateSensor) Readings(
	_ context.Context,
	_ map[string]interface{},
) (map[string]interface{}, error) {
	j.msgMu.Lock()
	defer j.msgMu.Unlock()
	if j.msg == nil {
		return nil, errors.New("joint state message not prepared")
	}
	return jointReadings(j.msg), nil
}

// jointReadings maps joint name to position, plus velocity and effort when
// the publisher filled them in.
func jointReadings(msg *sensor_msgs.JointState) map[string]interface{} {
	positions := map[string]interface{}{}
	velocities := map[string]interface{}{}
	efforts := map[string]interface{}{}
	for i, name := range msg.Name {
		if i < len(msg.Position) {
			positions[name] = msg.Position[i]
		}
		if i < len(msg.Velocity) {
			velocities[name] = msg.Velocity[i]
		}
		if i < len(msg.Effort) {
			efforts[name] = msg.Effort[i]
		}
	}
	out := map[string]interface{}{
		"positions": positions,
		"frame_id":  msg.Header.FrameId,
	}
	if len(velocities) > 0 {
		out["velocities"] = velocities
	}
	if len(efforts) > 0 {
		out["efforts"] = efforts
	}
	return out
}

func (j *JointStateSensor) Close(_ context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.subscriber != nil {
		j.subscriber.Close()
	}
	return nil
}
