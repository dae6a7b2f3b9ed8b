package gateway

import (
	"context"
	"fmt"
	"zeebeapi/internal/ports"
	"zeebeapi/internal/types"

	log "github.com/sirupsen/logrus"
)

// Gateway deploys and runs processes against a Zeebe cluster. It keeps one client, rebuilt whenever
// a call names a different endpoint. Its operations never return errors: every outcome, including
// panics in collaborators, resolves to a types.Result.
type Gateway struct {
	Files      ports.FileReader
	Classifier Classifier

	// Events, when set together with EventsTopic, receives an Event after each successful deploy or run.
	Events      ports.Publisher
	EventsTopic string

	clients *clientCache
}

func New(factory ports.ClientFactory, files ports.FileReader) *Gateway {
	return &Gateway{
		Files:      files,
		Classifier: MessageClassifier{},
		clients:    newClientCache(factory),
	}
}

// CheckConnectivity requests the cluster topology.
func (g *Gateway) CheckConnectivity(ctx context.Context, endpoint types.Endpoint) (res types.Result) {
	defer g.recoverInto(&res, "checkConnectivity", func(err error) types.Result {
		return types.Result{Success: false, Reason: g.classify(err, endpoint)}
	})

	err := g.withClient(ctx, endpoint, func(cli ports.EngineClient) error {
		_, err := cli.Topology(ctx)
		return err
	})
	if err != nil {
		log.WithError(err).WithField("endpoint", types.Redact(endpoint)).Error("failed to connect")
		return types.Result{Success: false, Reason: g.classify(err, endpoint)}
	}
	return types.Result{Success: true}
}

// Deploy reads the definition at req.FilePath and deploys it. Failures carry the original error.
func (g *Gateway) Deploy(ctx context.Context, req types.DeployRequest) (res types.Result) {
	defer g.recoverInto(&res, "deploy", failed)

	var definition []byte
	name := req.Name
	var deployment *types.Deployment
	err := g.withClient(ctx, req.Endpoint, func(cli ports.EngineClient) error {
		var err error
		definition, err = g.Files.ReadFile(ctx, req.FilePath)
		if err != nil {
			return err
		}
		name = DeploymentName(req.Name, req.FilePath)
		deployment, err = cli.Deploy(ctx, name, definition)
		return err
	})
	if err != nil {
		log.WithError(err).WithField("parameters", req.Redacted()).Error("failed to deploy")
		return failed(err)
	}

	g.publish(ctx, Event{
		Kind:     EventDeployed,
		Endpoint: types.Redact(req.Endpoint),
		Name:     name,
		Response: deployment,
	}, definition)
	return types.Result{Success: true, Response: deployment}
}

// Run starts the latest deployed version of req.ProcessID.
func (g *Gateway) Run(ctx context.Context, req types.RunRequest) (res types.Result) {
	defer g.recoverInto(&res, "run", failed)

	var instance *types.ProcessInstance
	err := g.withClient(ctx, req.Endpoint, func(cli ports.EngineClient) error {
		var err error
		instance, err = cli.CreateInstance(ctx, req.ProcessID, req.Variables)
		return err
	})
	if err != nil {
		log.WithError(err).WithField("parameters", req.Redacted()).Error("failed to run instance")
		return failed(err)
	}

	g.publish(ctx, Event{
		Kind:      EventStarted,
		Endpoint:  types.Redact(req.Endpoint),
		ProcessID: req.ProcessID,
		Response:  instance,
	}, nil)
	return types.Result{Success: true, Response: instance}
}

// Close closes the cached client. Operations still running finish on it first.
func (g *Gateway) Close() error {
	g.clients.close()
	return nil
}

func (g *Gateway) withClient(ctx context.Context, endpoint types.Endpoint, fn func(ports.EngineClient) error) error {
	cli, release, err := g.clients.acquire(ctx, endpoint)
	if err != nil {
		return err
	}
	defer release()
	return fn(cli)
}

func (g *Gateway) classify(err error, endpoint types.Endpoint) types.ErrorReason {
	if g.Classifier == nil {
		return MessageClassifier{}.Classify(err, endpoint)
	}
	return g.Classifier.Classify(err, endpoint)
}

// recoverInto turns a panic into the failure result built by onErr.
func (g *Gateway) recoverInto(res *types.Result, op string, onErr func(error) types.Result) {
	r := recover()
	if r == nil {
		return
	}
	err, ok := r.(error)
	if !ok {
		err = fmt.Errorf("%v", r)
	}
	log.WithError(err).WithField("operation", op).Error("recovered from panic")
	*res = onErr(err)
}

func failed(err error) types.Result {
	return types.Result{Success: false, Response: err}
}
