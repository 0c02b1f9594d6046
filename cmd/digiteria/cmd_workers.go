package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/digiteria/app/jobs"
	"github.com/shashiranjanraj/digiteria/config"
	"github.com/shashiranjanraj/digiteria/pkg/cache"
	"github.com/shashiranjanraj/digiteria/pkg/queue"
	"github.com/shashiranjanraj/digiteria/pkg/schedule"
)

var queueWorkersFlag int

// digiteria queue:work — run the queue workers standalone.
var queueWorkCmd = &cobra.Command{
	Use:   "queue:work",
	Short: "Start the queue workers",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		jobs.Register()
		if err := cache.Connect(); err == nil && cache.RDB != nil {
			queue.SetDriver(queue.NewRedisDriver(cache.RDB))
		} else {
			fmt.Println("Redis unavailable — using the in-memory queue (jobs from other processes will not arrive).")
		}

		workers := queueWorkersFlag
		if workers < 1 {
			workers = 4
		}

		fmt.Printf("Queue workers started (%d). Press Ctrl+C to stop.\n", workers)
		queue.StartWorkers(ctx, workers)

		<-ctx.Done()
		fmt.Println("\nQueue workers stopped.")
		return nil
	},
}

// digiteria schedule:run — run the task scheduler standalone.
var scheduleRunCmd = &cobra.Command{
	Use:   "schedule:run",
	Short: "Start the task scheduler",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		tasks := schedule.List()
		if len(tasks) == 0 {
			fmt.Println("No scheduled tasks registered.")
		} else {
			fmt.Println("Registered scheduled tasks:")
			for _, t := range tasks {
				fmt.Println("  -", t)
			}
		}

		fmt.Println("Scheduler started. Press Ctrl+C to stop.")
		schedule.Start(ctx)

		<-ctx.Done()
		fmt.Println("\nScheduler stopped.")
		return nil
	},
}

func init() {
	queueWorkCmd.Flags().IntVarP(&queueWorkersFlag, "workers", "w", 4, "Number of concurrent workers")
}
