package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"lambda-invoker/internal/logger"
	"lambda-invoker/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const successEnvelope = `{"statusCode":200,"body":"{\"name\":\"Ann\",\"career\":\"Eng\",\"college\":\"MIT\"}"}`

type fakeLambda struct {
	mu      sync.Mutex
	inputs  []*lambda.InvokeInput
	payload []byte
	err     error
}

func (f *fakeLambda) Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error) {
	f.mu.Lock()
	f.inputs = append(f.inputs, params)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	return &lambda.InvokeOutput{StatusCode: 200, Payload: f.payload}, nil
}

func newTestInvoker(client LambdaAPI) *Invoker {
	return NewInvoker(client, DefaultInvokerConfig(), logger.NewNop())
}

func TestCallSendsRequestResponseInvocation(t *testing.T) {
	fake := &fakeLambda{payload: []byte(successEnvelope)}
	inv := newTestInvoker(fake)

	_, err := inv.Call(context.Background(), models.NewRequest(models.OperationPost, "Ann", "Eng", "MIT"))
	require.NoError(t, err)

	require.Len(t, fake.inputs, 1)
	in := fake.inputs[0]
	assert.Equal(t, "example-lambda", aws.ToString(in.FunctionName))
	assert.Equal(t, types.InvocationTypeRequestResponse, in.InvocationType)
	assert.JSONEq(t, `{"httpMethod":"POST","data":{"name":"Ann","career":"Eng","college":"MIT"}}`, string(in.Payload))
}

func TestCallDecodesSuccess(t *testing.T) {
	inv := newTestInvoker(&fakeLambda{payload: []byte(successEnvelope)})

	result, err := inv.Call(context.Background(), models.NewRequest(models.OperationGet, "Ann", "", ""))
	require.NoError(t, err)

	assert.Equal(t, 200, result.StatusCode)
	assert.Equal(t, models.Student{Name: "Ann", Career: "Eng", College: "MIT"}, result.Student)
	assert.Equal(t, "Status Code: 200\nStudent Name: Ann\nCareer: Eng\nCollege: MIT\n", result.String())
}

func TestCallAcceptsCreated(t *testing.T) {
	inv := newTestInvoker(&fakeLambda{payload: []byte(`{"statusCode":201,"body":"{\"name\":\"Bo\"}"}`)})

	result, err := inv.Call(context.Background(), models.NewRequest(models.OperationPut, "Bo", "", ""))
	require.NoError(t, err)
	assert.Equal(t, 201, result.StatusCode)
	assert.Equal(t, "Bo", result.Student.Name)
}

func TestCallReportsRawEnvelopeOnFailureStatus(t *testing.T) {
	raw := `{"statusCode":400,"body":"{\"error\":\"missing name\"}"}`
	inv := newTestInvoker(&fakeLambda{payload: []byte(raw)})

	result, err := inv.Call(context.Background(), models.NewRequest(models.OperationGet, "", "", ""))
	assert.Nil(t, result)
	require.Error(t, err)
	assert.Equal(t, raw, err.Error())
	assert.True(t, errors.Is(err, models.ErrRemoteCallFailed))

	var statusErr *models.StatusError
	assert.True(t, errors.As(err, &statusErr))
}

func TestCallTreatsFunctionErrorPayloadAsFailure(t *testing.T) {
	raw := `{"errorMessage":"boom","errorType":"Exception"}`
	inv := newTestInvoker(&fakeLambda{payload: []byte(raw)})

	_, err := inv.Call(context.Background(), models.NewRequest(models.OperationGet, "", "", ""))
	require.Error(t, err)
	assert.Equal(t, raw, err.Error())
}

func TestCallReportsTransportError(t *testing.T) {
	inv := newTestInvoker(&fakeLambda{err: errors.New("dial tcp: connection refused")})

	_, err := inv.Call(context.Background(), models.NewRequest(models.OperationGet, "", "", ""))
	require.Error(t, err)
	assert.Equal(t, "dial tcp: connection refused", err.Error())
	assert.True(t, errors.Is(err, models.ErrRemoteCallFailed))
}

func TestCallReportsMalformedEnvelope(t *testing.T) {
	inv := newTestInvoker(&fakeLambda{payload: []byte(`not json`)})

	_, err := inv.Call(context.Background(), models.NewRequest(models.OperationGet, "", "", ""))
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrRemoteCallFailed))

	var syntaxErr *json.SyntaxError
	assert.True(t, errors.As(err, &syntaxErr))
}

func TestCallReportsMalformedBody(t *testing.T) {
	inv := newTestInvoker(&fakeLambda{payload: []byte(`{"statusCode":200,"body":"<html>"}`)})

	_, err := inv.Call(context.Background(), models.NewRequest(models.OperationGet, "", "", ""))
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrRemoteCallFailed))
}

type outcome struct {
	result string
	err    string
}

func invokeAndWait(t *testing.T, inv *Invoker, req models.Request) outcome {
	t.Helper()

	done := make(chan outcome, 2)
	inv.InvokeAsync(req,
		func(r string) { done <- outcome{result: r} },
		func(e string) { done <- outcome{err: e} },
	)

	var got outcome
	select {
	case got = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("invocation did not complete")
	}

	inv.Shutdown()
	assert.Len(t, done, 0, "more than one callback fired")
	return got
}

func TestInvokeAsyncDeliversResult(t *testing.T) {
	inv := newTestInvoker(&fakeLambda{payload: []byte(successEnvelope)})

	got := invokeAndWait(t, inv, models.NewRequest(models.OperationGet, "Ann", "", ""))
	assert.Equal(t, "Status Code: 200\nStudent Name: Ann\nCareer: Eng\nCollege: MIT\n", got.result)
	assert.Empty(t, got.err)

	stats := inv.GetStats()
	assert.EqualValues(t, 1, stats.TotalCalls)
	assert.EqualValues(t, 0, stats.Failures)
	assert.EqualValues(t, 0, stats.InFlight)
}

func TestInvokeAsyncDeliversError(t *testing.T) {
	inv := newTestInvoker(&fakeLambda{err: errors.New("request timed out")})

	got := invokeAndWait(t, inv, models.NewRequest(models.OperationGet, "", "", ""))
	assert.Equal(t, "request timed out", got.err)
	assert.Empty(t, got.result)
	assert.EqualValues(t, 1, inv.GetStats().Failures)
}

type blockingLambda struct {
	release chan struct{}
	started chan struct{}
}

func (b *blockingLambda) Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error) {
	b.started <- struct{}{}
	<-b.release
	return &lambda.InvokeOutput{Payload: []byte(successEnvelope)}, nil
}

func TestInvokeAsyncDoesNotBlockCaller(t *testing.T) {
	fake := &blockingLambda{release: make(chan struct{}), started: make(chan struct{}, 2)}
	inv := newTestInvoker(fake)

	results := make(chan string, 2)
	inv.InvokeAsync(models.NewRequest(models.OperationGet, "a", "", ""), func(r string) { results <- r }, func(string) {})
	inv.InvokeAsync(models.NewRequest(models.OperationGet, "b", "", ""), func(r string) { results <- r }, func(string) {})

	for i := 0; i < 2; i++ {
		select {
		case <-fake.started:
		case <-time.After(2 * time.Second):
			t.Fatal("overlapping invocations were serialized")
		}
	}
	assert.EqualValues(t, 2, inv.GetStats().InFlight)

	close(fake.release)
	inv.Shutdown()
	assert.Len(t, results, 2)
	assert.EqualValues(t, 0, inv.GetStats().InFlight)
}

func TestNewInvokerFillsDefaults(t *testing.T) {
	inv := NewInvoker(&fakeLambda{}, InvokerConfig{}, logger.NewNop())
	assert.Equal(t, DefaultInvokerConfig(), inv.Config())
}
