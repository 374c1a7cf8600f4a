//go:build gcloud

package pushqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	taskspb "cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type CloudTasksClient struct {
	client              *cloudtasks.Client
	queuePath           string
	targetURL           string
	serviceAccountEmail string
	maxRetries          int
}

type CloudTasksConfig struct {
	ProjectID           string
	LocationID          string
	QueueID             string
	TargetURL           string
	ServiceAccountEmail string
	Endpoint            string
	MaxRetries          int
}

func NewCloudTasksClient(ctx context.Context, cfg CloudTasksConfig) (*CloudTasksClient, error) {
	var opts []option.ClientOption
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	client, err := cloudtasks.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud tasks client: %w", err)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	return &CloudTasksClient{
		client:              client,
		queuePath:           fmt.Sprintf("projects/%s/locations/%s/queues/%s", cfg.ProjectID, cfg.LocationID, cfg.QueueID),
		targetURL:           cfg.TargetURL,
		serviceAccountEmail: cfg.ServiceAccountEmail,
		maxRetries:          maxRetries,
	}, nil
}

func (c *CloudTasksClient) Enqueue(ctx context.Context, msg *PushMessage) (*EnqueueResponse, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal push message: %w", err)
	}

	httpRequest := &taskspb.HttpRequest{
		HttpMethod: taskspb.HttpMethod_POST,
		Url:        c.targetURL,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: payload,
	}
	if c.serviceAccountEmail != "" {
		httpRequest.AuthorizationHeader = &taskspb.HttpRequest_OidcToken{
			OidcToken: &taskspb.OidcToken{
				ServiceAccountEmail: c.serviceAccountEmail,
			},
		}
	}

	task := &taskspb.Task{
		Name: fmt.Sprintf("%s/tasks/%s", c.queuePath, taskName(msg)),
		MessageType: &taskspb.Task_HttpRequest{
			HttpRequest: httpRequest,
		},
	}
	if !msg.DeliverAt.IsZero() {
		task.ScheduleTime = timestamppb.New(msg.DeliverAt)
	}

	req := &taskspb.CreateTaskRequest{
		Parent: c.queuePath,
		Task:   task,
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := backoffFor(attempt)
			slog.DebugContext(ctx, "retrying cloud task creation",
				slog.String("notification_id", msg.NotificationID),
				slog.String("user_id", msg.UserID),
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", backoff),
			)
			if err := sleepContext(ctx, backoff); err != nil {
				return nil, err
			}
		}

		resp, err := c.createTask(ctx, req, msg)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		switch status.Code(err) {
		case codes.AlreadyExists:
			slog.InfoContext(ctx, "cloud task already exists",
				slog.String("notification_id", msg.NotificationID),
			)
			return &EnqueueResponse{Name: task.Name}, nil
		case codes.InvalidArgument, codes.PermissionDenied, codes.NotFound:
			return nil, fmt.Errorf("failed to create cloud task: %w", err)
		}
	}

	slog.ErrorContext(ctx, "all retries exhausted for cloud task creation",
		slog.String("notification_id", msg.NotificationID),
		slog.String("user_id", msg.UserID),
		slog.Int("max_retries", c.maxRetries),
		slog.String("error", lastErr.Error()),
	)
	return nil, fmt.Errorf("failed to create cloud task after %d retries: %w", c.maxRetries, lastErr)
}

func (c *CloudTasksClient) createTask(ctx context.Context, req *taskspb.CreateTaskRequest, msg *PushMessage) (*EnqueueResponse, error) {
	created, err := c.client.CreateTask(ctx, req)
	if err != nil {
		slog.WarnContext(ctx, "failed to create cloud task",
			slog.String("notification_id", msg.NotificationID),
			slog.String("user_id", msg.UserID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	slog.InfoContext(ctx, "push message queued to Cloud Tasks",
		slog.String("task_name", created.Name),
		slog.String("notification_id", msg.NotificationID),
		slog.String("user_id", msg.UserID),
	)

	var scheduleTime, createTime time.Time
	if created.ScheduleTime != nil {
		scheduleTime = created.ScheduleTime.AsTime()
	}
	if created.CreateTime != nil {
		createTime = created.CreateTime.AsTime()
	}

	return &EnqueueResponse{
		Name:         created.Name,
		ScheduleTime: scheduleTime,
		CreateTime:   createTime,
	}, nil
}

func (c *CloudTasksClient) Close() error {
	return c.client.Close()
}

// taskName derives a Cloud Tasks id that is unique per emission. Task ids
// only allow letters, digits, hyphens and underscores.
func taskName(msg *PushMessage) string {
	replacer := strings.NewReplacer(":", "_", ".", "_", "@", "_", "/", "_")
	return fmt.Sprintf("%s-%s-%d",
		replacer.Replace(msg.UserID),
		replacer.Replace(msg.NotificationID),
		time.Now().UnixNano(),
	)
}
