package asynq

import (
	"os"
	"time"

	"facegate.io/infrastructure/logger"
	queue_tasks "facegate.io/infrastructure/message_queue/tasks"
	mq_types "facegate.io/infrastructure/message_queue/types"
	"github.com/hibiken/asynq"
)

type AsynqBroker struct {
	Client *asynq.Client
}

func (aq *AsynqBroker) Start() {
	redisConnOpt := asynq.RedisClientOpt{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}

	aq.Client = asynq.NewClient(redisConnOpt)

	srv := asynq.NewServer(
		redisConnOpt,
		asynq.Config{
			Concurrency: 50,
			Queues: map[string]int{
				string(mq_types.High):   7,
				string(mq_types.Medium): 2,
				string(mq_types.Low):    1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(string(queue_tasks.HandleSecurityAlertTaskName), queue_tasks.HandleSecurityAlertTask)
	mux.HandleFunc(string(queue_tasks.HandleSessionSweepTaskName), queue_tasks.HandleSessionSweepTask)

	scheduler := asynq.NewScheduler(redisConnOpt, nil)
	if _, err := scheduler.Register("@every 10m",
		asynq.NewTask(string(queue_tasks.HandleSessionSweepTaskName), nil),
		asynq.Queue(string(mq_types.Low))); err != nil {
		logger.Error("failed to register session sweep schedule", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
	}
	go func() {
		if err := scheduler.Run(); err != nil {
			logger.Error("task scheduler stopped", logger.LoggerOptions{
				Key:  "error",
				Data: err,
			})
		}
	}()

	if err := srv.Run(mux); err != nil {
		logger.Error("task queue server stopped", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
	}
}

func (aq *AsynqBroker) Enqueue(task mq_types.QueueTask) {
	if aq.Client == nil {
		logger.Warning("task enqueued before queue start; dropping", logger.LoggerOptions{
			Key:  "task",
			Data: task.Name,
		})
		return
	}
	if task.TimeOut == 0 {
		task.TimeOut = 60
	}
	if task.MaxRetry == 0 {
		task.MaxRetry = 10
	}
	aq.Client.Enqueue(asynq.NewTask(string(task.Name), task.Payload),
		asynq.ProcessIn(time.Duration(task.ProcessIn)*time.Second),
		asynq.MaxRetry(task.MaxRetry),
		asynq.Timeout(time.Second*time.Duration(task.TimeOut)),
		asynq.Queue(string(task.Priority)))
}
