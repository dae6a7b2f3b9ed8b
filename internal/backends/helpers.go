package backends

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"strconv"
	"time"
	"zeebeapi/internal/backends/ddb"
	"zeebeapi/internal/backends/files"
	"zeebeapi/internal/backends/zeebe"
	"zeebeapi/internal/gateway"
	"zeebeapi/internal/ipc"
	"zeebeapi/internal/ports"
	"zeebeapi/internal/pub"
	"zeebeapi/internal/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/redis/go-redis/v9"

	redisbackend "zeebeapi/internal/backends/redis"
)

const (
	ProfileBackendEnvKey = "PROFILE_BACKEND"
	IPCBackendEnvKey     = "IPC_BACKEND"
	BackendDDB           = "ddb"
	BackendRedis         = "redis"

	DDBEndpointKey = "DDB_ENDPOINT"
	DDBTableKey    = "DDB_TABLE"

	RedisHost  = "REDIS_HOST"
	RedisPort  = "REDIS_PORT"
	RedisUser  = "REDIS_USER"
	RedisPass  = "REDIS_PASS"
	RedisTLS   = "REDIS_SSL"
	RedisDBNum = "REDIS_DB_NUM"

	EventsSNSArnKey = "EVENTS_SNS_ARN"
	SNSEndpointKey  = "SNS_ENDPOINT"
	KeepAliveKey    = "ZEEBE_KEEPALIVE"

	DefaultTable = "zeebeapi_profiles"
)
const AmazonRootCA1PEM = `-----BEGIN CERTIFICATE-----
MIIDQTCCAimgAwIBAgITBmyfz5m/jAo54vB4ikPmljZbyjANBgkqhkiG9w0BAQsF
ADA5MQswCQYDVQQGEwJVUzEPMA0GA1UEChMGQW1hem9uMRkwFwYDVQQDExBBbWF6
b24gUm9vdCBDQSAxMB4XDTE1MDUyNjAwMDAwMFoXDTM4MDExNzAwMDAwMFowOTEL
MAkGA1UEBhMCVVMxDzANBgNVBAoTBkFtYXpvbjEZMBcGA1UEAxMQQW1hem9uIFJv
b3QgQ0EgMTCCASIwDQYJKoZIhvcNAQEBBQADggEPADCCAQoCggEBALJ4gHHKeNXj
ca9HgFB0fW7Y14h29Jlo91ghYPl0hAEvrAIthtOgQ3pOsqTQNroBvo3bSMgHFzZM
9O6II8c+6zf1tRn4SWiw3te5djgdYZ6k/oI2peVKVuRF4fn9tBb6dNqcmzU5L/qw
IFAGbHrQgLKm+a/sRxmPUDgH3KKHOVj4utWp+UhnMJbulHheb4mjUcAwhmahRWa6
VOujw5H5SNz/0egwLX0tdHA114gk957EWW67c4cX8jJGKLhD+rcdqsq08p8kDi1L
93FcXmn/6pUCyziKrlA4b9v7LWIbxcceVOF34GfID5yHI9Y/QCB/IIDEgEw+OyQm
jgSubJrIqg0CAwEAAaNCMEAwDwYDVR0TAQH/BAUwAwEB/zAOBgNVHQ8BAf8EBAMC
AYYwHQYDVR0OBBYEFIQYzIU07LwMlJQuCFmcx7IQTgoIMA0GCSqGSIb3DQEBCwUA
A4IBAQCY8jdaQZChGsV2USggNiMOruYou6r4lK5IpDB/G/wkjUu0yKGX9rbxenDI
U5PMCCjjmCXPI6T53iHTfIUJrU6adTrCC2qJeHZERxhlbI1Bjjt/msv0tadQ1wUs
N+gDS63pYaACbvXy8MWy7Vu33PqUXHeeE6V/Uq2V8viTO96LXFvKWlJbYK8U90vv
o/ufQJVtMVT8QtPHRh8jrdkPSHCa2XV4cdFyQzR1bldZwgJcJmApzyMZFo6IQ6XU
5MsI+yMRQ+hDKXJioaldXgjUkK642M4UwtBV8ob2xJNDd2ZhwLnoQdeXeGADbkpy
rqXRfboQnoZsG4q5WTP468SQvvG5
-----END CERTIFICATE-----`

// ProfileBackendFromEnv constructs a ProfileStore based on environment variables.
// Supported backends are "ddb" (DynamoDB) and "redis" (Redis). It checks the "PROFILE_BACKEND" env var
// and, depending on the backend, reads additional env vars.
// An empty value disables profiles and returns a nil store.
func ProfileBackendFromEnv(ctx context.Context) (ports.ProfileStore, error) {
	backend := os.Getenv(ProfileBackendEnvKey)
	switch backend {
	case "":
		return nil, nil
	case BackendRedis:
		redisClient, err := redisClientFromEnv(ctx)
		if err != nil {
			return nil, err
		}
		return redisbackend.NewProfileStore(redisClient), nil
	case BackendDDB:
		ddbClient, err := ddbClientFromEnv(ctx)
		if err != nil {
			return nil, err
		}
		store, err := ddb.NewProfileStore(ctx, getenv(DDBTableKey, DefaultTable), ddbClient)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, types.Err(types.ErrInvalidBackend, nil, "%s=%q", ProfileBackendEnvKey, backend)
	}
}

// BusFromEnv constructs the IPC bus. "IPC_BACKEND=redis" selects Redis pub/sub, an empty value
// an in-process bus.
func BusFromEnv(ctx context.Context) (ipc.Bus, error) {
	backend := os.Getenv(IPCBackendEnvKey)
	switch backend {
	case "":
		return ipc.NewMemBus(), nil
	case BackendRedis:
		redisClient, err := redisClientFromEnv(ctx)
		if err != nil {
			return nil, err
		}
		return redisbackend.NewBus(redisClient), nil
	default:
		return nil, types.Err(types.ErrInvalidBackend, nil, "%s=%q", IPCBackendEnvKey, backend)
	}
}

// PublisherFromEnv returns the SNS publisher and topic for gateway events.
// It returns a nil publisher when "EVENTS_SNS_ARN" is not set.
func PublisherFromEnv(ctx context.Context) (ports.Publisher, string, error) {
	arn := os.Getenv(EventsSNSArnKey)
	if arn == "" {
		return nil, "", nil
	}

	var snsEndpoint *string
	if se := os.Getenv(SNSEndpointKey); se != "" {
		snsEndpoint = aws.String(se)
	}
	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("load AWS config: %w", err)
	}
	snsClient := sns.NewFromConfig(awsCfg, func(o *sns.Options) {
		if snsEndpoint != nil {
			// This is used for testing only locally
			o.BaseEndpoint = snsEndpoint
			if o.Region == "" {
				o.Region = "us-east-1"
			}
			o.Credentials = credentials.NewStaticCredentialsProvider("test", "test", "")
		}
	})
	return pub.NewSNS(snsClient), arn, nil
}

// FactoryFromEnv builds the Zeebe client factory. "ZEEBE_KEEPALIVE" is a Go duration.
func FactoryFromEnv() (*zeebe.Factory, error) {
	keepAlive, err := parseDuration(os.Getenv(KeepAliveKey))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeepAliveKey, err)
	}
	return zeebe.NewFactory(keepAlive), nil
}

// GatewayFromEnv wires a gateway with the Zeebe client factory, the local file reader and,
// when configured, the event publisher.
func GatewayFromEnv(ctx context.Context) (*gateway.Gateway, error) {
	factory, err := FactoryFromEnv()
	if err != nil {
		return nil, err
	}
	gw := gateway.New(factory, files.NewReader())
	gw.Events, gw.EventsTopic, err = PublisherFromEnv(ctx)
	if err != nil {
		return nil, err
	}
	return gw, nil
}

// ddbClientFromEnv creates a DynamoDB client from environment variables, if any.
func ddbClientFromEnv(ctx context.Context) (*dynamodb.Client, error) {
	var ddbEndpoint *string
	if de := os.Getenv(DDBEndpointKey); de != "" {
		ddbEndpoint = aws.String(de)
	}

	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}

	ddbClient := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if ddbEndpoint != nil {
			// This is used for testing only locally
			o.BaseEndpoint = ddbEndpoint
			o.Region = getenv("AWS_REGION", "us-east-1")
			o.Credentials = credentials.NewStaticCredentialsProvider(
				getenv("AWS_ACCESS_KEY_ID", "x"),
				getenv("AWS_SECRET_ACCESS_KEY", "x"),
				"",
			)
		}
	})
	return ddbClient, nil
}

// redisClientFromEnv creates a Redis client from environment variables, if any.
func redisClientFromEnv(ctx context.Context) (*redis.Client, error) {
	opts, err := redisOptionsFromEnv()
	if err != nil {
		return nil, err
	}
	redisClient := redis.NewClient(opts)
	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}
	return redisClient, nil
}

func redisOptionsFromEnv() (*redis.Options, error) {
	host := getenv(RedisHost, "localhost")
	port := getenv(RedisPort, "6379")
	dbNum, err := strconv.Atoi(getenv(RedisDBNum, "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid Redis DB number: %w", err)
	}

	var tlsConfig *tls.Config
	if parseBoolean(getenv(RedisTLS, "false")) {
		caCerts := x509.NewCertPool()
		if !caCerts.AppendCertsFromPEM([]byte(AmazonRootCA1PEM)) {
			return nil, fmt.Errorf("failed to retrieve CA certificate")
		}
		tlsConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
			RootCAs:    caCerts,
		}
	}

	return &redis.Options{
		Addr:      fmt.Sprintf("%s:%s", host, port),
		Username:  os.Getenv(RedisUser),
		Password:  os.Getenv(RedisPass),
		DB:        dbNum,
		TLSConfig: tlsConfig,
	}, nil
}

// getenv retrieves the value of the environment variable named by the key.
func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func parseBoolean(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}
	return b
}

// parseDuration accepts an empty string as zero.
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}
