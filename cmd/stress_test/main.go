package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/kaos-order/internal/adapter/storage"
	"github.com/rl1809/kaos-order/internal/core/domain"
	"github.com/rl1809/kaos-order/internal/core/handoff"
	"github.com/rl1809/kaos-order/internal/core/service"
)

const (
	totalCustomers  = 50
	itemsPerOrder   = 5
	submitsPerOrder = 3
	sessionTTL      = 10 * time.Minute
)

func main() {
	ctx := context.Background()

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	rdb := redis.NewClient(&redis.Options{Addr: redisAddr, PoolSize: 100})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}
	defer rdb.Close()

	orderService := service.NewOrderService(
		storage.NewRedisAdapter(rdb, sessionTTL),
		handoff.NewComposer(time.Now, handoff.Jakarta()),
	)

	var (
		submitted atomic.Int32
		duplicate atomic.Int32
		failed    atomic.Int32
		pieces    atomic.Int64
	)

	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < totalCustomers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			sessionID, err := fillOrder(ctx, orderService, n)
			if err != nil {
				log.Printf("customer %d: %v", n, err)
				failed.Add(1)
				return
			}

			// Several tabs press submit at once; only one may hand off.
			var submitWG sync.WaitGroup
			for j := 0; j < submitsPerOrder; j++ {
				submitWG.Add(1)
				go func() {
					defer submitWG.Done()
					_, err := orderService.Submit(ctx, sessionID)
					switch {
					case err == nil:
						submitted.Add(1)
						pieces.Add(itemsPerOrder)
					case errors.Is(err, service.ErrAlreadySubmitted), errors.Is(err, service.ErrSessionNotFound):
						duplicate.Add(1)
					default:
						log.Printf("customer %d: submit: %v", n, err)
						failed.Add(1)
					}
				}()
			}
			submitWG.Wait()
		}(i)
	}

	wg.Wait()
	elapsed := time.Since(start)

	fmt.Println("========== STRESS TEST RESULTS ==========")
	fmt.Printf("Customers:        %d\n", totalCustomers)
	fmt.Printf("Items per order:  %d\n", itemsPerOrder)
	fmt.Printf("Submit attempts:  %d\n", totalCustomers*submitsPerOrder)
	fmt.Printf("Submitted:        %d\n", submitted.Load())
	fmt.Printf("Duplicates:       %d\n", duplicate.Load())
	fmt.Printf("Failed:           %d\n", failed.Load())
	fmt.Printf("Pieces ordered:   %d\n", pieces.Load())
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("==========================================")

	if submitted.Load() == totalCustomers && duplicate.Load() == totalCustomers*(submitsPerOrder-1) {
		fmt.Printf("PASS: exactly one handoff per customer\n")
	} else {
		fmt.Printf("FAIL: expected %d handoffs and %d duplicates, got %d/%d\n",
			totalCustomers, totalCustomers*(submitsPerOrder-1), submitted.Load(), duplicate.Load())
	}
}

// fillOrder adds and fills itemsPerOrder items concurrently within one
// session, so every edit contends for the same form.
func fillOrder(ctx context.Context, svc *service.OrderService, n int) (string, error) {
	sessionID, form, err := svc.StartSession(ctx)
	if err != nil {
		return "", fmt.Errorf("start session: %w", err)
	}

	name := fmt.Sprintf("Customer %d", n)
	phone := fmt.Sprintf("0812%08d", n)
	if _, err := svc.UpdateCustomer(ctx, sessionID, service.CustomerUpdate{Name: &name, Phone: &phone}); err != nil {
		return "", fmt.Errorf("update customer: %w", err)
	}

	code := domain.CodeOptions[n%len(domain.CodeOptions)].Value
	color := domain.AvailableColors(code)[0]
	sleeve := domain.AvailableSleeves(code)[0]
	size := domain.SizeOptions[n%len(domain.SizeOptions)].Value
	update := domain.ItemUpdate{Code: &code, Color: &color, Sleeve: &sleeve, Size: &size}

	if _, err := svc.UpdateItem(ctx, sessionID, form.Items[0].ID, update); err != nil {
		return "", fmt.Errorf("update item: %w", err)
	}

	var (
		wg   sync.WaitGroup
		errs = make(chan error, itemsPerOrder)
	)
	for i := 1; i < itemsPerOrder; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			item, err := svc.AddItem(ctx, sessionID)
			if err == nil {
				_, err = svc.UpdateItem(ctx, sessionID, item.ID, update)
			}
			if err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	if err := <-errs; err != nil {
		return "", err
	}

	f, err := svc.Form(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if got := len(f.ValidItems()); got != itemsPerOrder {
		return "", fmt.Errorf("lost edits: %d of %d items complete", got, itemsPerOrder)
	}
	return sessionID, nil
}
