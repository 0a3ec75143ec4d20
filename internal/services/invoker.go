package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"lambda-invoker/internal/logger"
	"lambda-invoker/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/google/uuid"
)

const (
	DefaultFunctionName = "example-lambda"
	DefaultRegion       = "us-east-1"
)

// LambdaAPI is the part of the Lambda client the invoker depends on.
type LambdaAPI interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// InvokerConfig identifies the remote function.
type InvokerConfig struct {
	FunctionName string
	Region       string
}

// DefaultInvokerConfig returns the compiled-in target function.
func DefaultInvokerConfig() InvokerConfig {
	return InvokerConfig{
		FunctionName: DefaultFunctionName,
		Region:       DefaultRegion,
	}
}

// InvokerStats summarizes calls made since startup.
type InvokerStats struct {
	TotalCalls  int64
	Failures    int64
	InFlight    int64
	AverageTime time.Duration
}

// Invoker runs one synchronous Lambda invocation per request on its own goroutine.
type Invoker struct {
	client LambdaAPI
	cfg    InvokerConfig
	logger logger.Logger

	wg sync.WaitGroup

	mu        sync.Mutex
	total     int64
	failures  int64
	inFlight  int64
	totalTime time.Duration
}

// NewInvoker creates an invoker around an existing client.
func NewInvoker(client LambdaAPI, cfg InvokerConfig, log logger.Logger) *Invoker {
	if cfg.FunctionName == "" {
		cfg.FunctionName = DefaultFunctionName
	}
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}
	return &Invoker{
		client: client,
		cfg:    cfg,
		logger: log,
	}
}

// NewLambdaInvoker builds a Lambda client from the ambient AWS credential chain.
func NewLambdaInvoker(ctx context.Context, cfg InvokerConfig, log logger.Logger) (*Invoker, error) {
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return NewInvoker(lambda.NewFromConfig(awsCfg), cfg, log), nil
}

// Config returns the target function settings.
func (inv *Invoker) Config() InvokerConfig {
	return inv.cfg
}

// Call invokes the function and waits for its response.
func (inv *Invoker) Call(ctx context.Context, req models.Request) (*models.Result, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, &models.CallError{Err: err}
	}

	out, err := inv.client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(inv.cfg.FunctionName),
		InvocationType: types.InvocationTypeRequestResponse,
		Payload:        payload,
	})
	if err != nil {
		return nil, &models.CallError{Err: err}
	}

	return decodeResponse(out.Payload)
}

// decodeResponse turns the function's raw payload into a Result.
// Anything other than a 200 or 201 envelope is reported with the raw payload as its message.
func decodeResponse(raw []byte) (*models.Result, error) {
	var envelope models.Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, &models.CallError{Err: err}
	}

	if !envelope.IsSuccess() {
		return nil, &models.StatusError{Raw: raw}
	}

	var student models.Student
	if err := json.Unmarshal([]byte(envelope.Body), &student); err != nil {
		return nil, &models.CallError{Err: err}
	}

	return &models.Result{
		StatusCode: envelope.StatusCode,
		Student:    student,
	}, nil
}

// InvokeAsync starts a call on a new goroutine. Exactly one of onResult or onError fires.
func (inv *Invoker) InvokeAsync(req models.Request, onResult func(string), onError func(string)) {
	callID := uuid.NewString()

	inv.mu.Lock()
	inv.inFlight++
	inv.mu.Unlock()

	inv.wg.Add(1)
	go func() {
		defer inv.wg.Done()

		inv.logger.Debug("Invoker", "invocation started", map[string]interface{}{
			"call_id":   callID,
			"function":  inv.cfg.FunctionName,
			"region":    inv.cfg.Region,
			"operation": string(req.Operation),
		})

		start := time.Now()
		result, err := inv.Call(context.Background(), req)
		elapsed := time.Since(start)
		inv.record(elapsed, err)

		if err != nil {
			inv.logger.Error("Invoker", err, map[string]interface{}{
				"call_id":     callID,
				"duration_ms": elapsed.Milliseconds(),
			})
			onError(err.Error())
			return
		}

		inv.logger.Info("Invoker", "invocation completed", map[string]interface{}{
			"call_id":     callID,
			"status_code": result.StatusCode,
			"duration_ms": elapsed.Milliseconds(),
		})
		onResult(result.String())
	}()
}

func (inv *Invoker) record(elapsed time.Duration, err error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	inv.inFlight--
	inv.total++
	inv.totalTime += elapsed
	if err != nil {
		inv.failures++
	}
}

// GetStats returns a snapshot of call statistics.
func (inv *Invoker) GetStats() InvokerStats {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	stats := InvokerStats{
		TotalCalls: inv.total,
		Failures:   inv.failures,
		InFlight:   inv.inFlight,
	}
	if inv.total > 0 {
		stats.AverageTime = inv.totalTime / time.Duration(inv.total)
	}
	return stats
}

// Shutdown waits for in-flight invocations to finish.
func (inv *Invoker) Shutdown() {
	inv.wg.Wait()
	inv.logger.Debug("Invoker", "all invocations finished", nil)
}
