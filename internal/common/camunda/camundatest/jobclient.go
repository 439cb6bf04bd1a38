// Package camundatest provides a recording worker.JobClient for handler
// tests. Commands are real zbc commands sent to an in-memory gateway.
package camundatest

import (
	"context"
	"sync"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"google.golang.org/grpc"
)

const (
	CommandComplete = "complete"
	CommandFail     = "fail"
	CommandThrow    = "throw"
)

// Command is one request received by the gateway. CtxErr is the state of
// the send context when the request arrived.
type Command struct {
	Kind         string
	JobKey       int64
	Retries      int32
	ErrorCode    string
	ErrorMessage string
	Variables    string
	CtxErr       error
}

// JobClient records every command it is sent. Like a real gateway it
// rejects requests whose context is already done.
type JobClient struct {
	pb.GatewayClient

	mu       sync.Mutex
	commands []Command
}

func NewJobClient() *JobClient {
	return &JobClient{}
}

// NewJob builds an activated job carrying variables.
func NewJob(key int64, taskType string, retries int32, variables string) entities.Job {
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:                key,
		Type:               taskType,
		ProcessInstanceKey: key * 10,
		Retries:            retries,
		Variables:          variables,
	}}
}

func noRetry(context.Context, error) bool { return false }

func (c *JobClient) NewCompleteJobCommand() commands.CompleteJobCommandStep1 {
	return commands.NewCompleteJobCommand(c, noRetry)
}

func (c *JobClient) NewFailJobCommand() commands.FailJobCommandStep1 {
	return commands.NewFailJobCommand(c, noRetry)
}

func (c *JobClient) NewThrowErrorCommand() commands.ThrowErrorCommandStep1 {
	return commands.NewThrowErrorCommand(c, noRetry)
}

// Commands returns a copy of what has been received so far.
func (c *JobClient) Commands() []Command {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Command(nil), c.commands...)
}

func (c *JobClient) record(ctx context.Context, cmd Command) error {
	cmd.CtxErr = ctx.Err()
	c.mu.Lock()
	c.commands = append(c.commands, cmd)
	c.mu.Unlock()
	return cmd.CtxErr
}

func (c *JobClient) CompleteJob(ctx context.Context, in *pb.CompleteJobRequest, _ ...grpc.CallOption) (*pb.CompleteJobResponse, error) {
	if err := c.record(ctx, Command{Kind: CommandComplete, JobKey: in.GetJobKey(), Variables: in.GetVariables()}); err != nil {
		return nil, err
	}
	return &pb.CompleteJobResponse{}, nil
}

func (c *JobClient) FailJob(ctx context.Context, in *pb.FailJobRequest, _ ...grpc.CallOption) (*pb.FailJobResponse, error) {
	err := c.record(ctx, Command{
		Kind:         CommandFail,
		JobKey:       in.GetJobKey(),
		Retries:      in.GetRetries(),
		ErrorMessage: in.GetErrorMessage(),
		Variables:    in.GetVariables(),
	})
	if err != nil {
		return nil, err
	}
	return &pb.FailJobResponse{}, nil
}

func (c *JobClient) ThrowError(ctx context.Context, in *pb.ThrowErrorRequest, _ ...grpc.CallOption) (*pb.ThrowErrorResponse, error) {
	err := c.record(ctx, Command{
		Kind:         CommandThrow,
		JobKey:       in.GetJobKey(),
		ErrorCode:    in.GetErrorCode(),
		ErrorMessage: in.GetErrorMessage(),
		Variables:    in.GetVariables(),
	})
	if err != nil {
		return nil, err
	}
	return &pb.ThrowErrorResponse{}, nil
}
