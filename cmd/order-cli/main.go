// Command order-cli builds one order from flags, submits it and opens the
// WhatsApp handoff in the default browser.
//
//	order-cli -name Budi -phone 081234567890 -item 01:hitam:pendek:L:2 -item 07:navy:panjang:XL
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/rl1809/kaos-order/internal/adapter/launcher"
	"github.com/rl1809/kaos-order/internal/adapter/storage"
	"github.com/rl1809/kaos-order/internal/core/domain"
	"github.com/rl1809/kaos-order/internal/core/handoff"
	"github.com/rl1809/kaos-order/internal/core/service"
	"github.com/rl1809/kaos-order/internal/logging"
)

func main() {
	name := flag.String("name", "", "customer name")
	phone := flag.String("phone", "", "customer phone number")
	notes := flag.String("notes", "", "additional notes")
	printOnly := flag.Bool("print", false, "print the message and link instead of opening a browser")
	logLevel := flag.String("log-level", "warn", "log level")
	var items itemFlags
	flag.Var(&items, "item", "product as code:color:sleeve:size[:quantity], repeatable")
	flag.Parse()

	logger, err := logging.New(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync()

	ctx := context.Background()
	result, err := buildAndSubmit(ctx, *name, *phone, *notes, items)
	if err != nil {
		if msg := domain.UserMessage(err); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
			os.Exit(1)
		}
		logger.Fatal("submit order", zap.Error(err))
	}

	fmt.Println(result.Message)
	fmt.Println()
	fmt.Println(result.URL)
	if *printOnly {
		return
	}

	dispatcher := handoff.NewDispatcher(launcher.NewBrowserLauncher(), launcher.NewWriterNotifier(os.Stdout), logger)
	<-dispatcher.Dispatch(ctx, result)
}

// buildAndSubmit fills a fresh form the way the web form would and submits it.
func buildAndSubmit(ctx context.Context, name, phone, notes string, items []domain.ItemUpdate) (handoff.Handoff, error) {
	svc := service.NewOrderService(
		storage.NewMemoryAdapter(0),
		handoff.NewComposer(time.Now, handoff.Jakarta()),
	)

	sessionID, form, err := svc.StartSession(ctx)
	if err != nil {
		return handoff.Handoff{}, err
	}
	if _, err := svc.UpdateCustomer(ctx, sessionID, service.CustomerUpdate{
		Name:  &name,
		Phone: &phone,
		Notes: &notes,
	}); err != nil {
		return handoff.Handoff{}, err
	}

	itemID := form.Items[0].ID
	for i, u := range items {
		if i > 0 {
			item, err := svc.AddItem(ctx, sessionID)
			if err != nil {
				return handoff.Handoff{}, err
			}
			itemID = item.ID
		}
		if _, err := svc.UpdateItem(ctx, sessionID, itemID, u); err != nil {
			return handoff.Handoff{}, err
		}
	}

	return svc.Submit(ctx, sessionID)
}
