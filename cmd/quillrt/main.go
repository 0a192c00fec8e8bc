// Package main implements the quillrt demo driver: a thin CLI that
// exercises the Runtime Façade end to end with a handful of canned
// in-process programs. It is not a language front-end — it builds AST by
// hand, because the business-language parser is explicitly out of scope
// (spec.md §1) — and it must not grow into one.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quilllang/quill/internal/types"
	"github.com/quilllang/quill/internal/value"
	"github.com/quilllang/quill/pkg/reactor"
	"github.com/quilllang/quill/pkg/runtime"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		momentMS int
		currency string
	)

	root := &cobra.Command{
		Use:   "quillrt",
		Short: "Runs a canned demo program against the quill runtime",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(time.Duration(momentMS)*time.Millisecond, currency)
		},
	}
	root.Flags().IntVar(&momentMS, "moment-ms", 50, "moment duration in milliseconds")
	root.Flags().StringVar(&currency, "currency", "USD", "default currency for money literals")

	return root
}

// runDemo builds a tiny inventory program: a stock count watched by a
// non-negative constraint with a healing action, and a low-stock trigger
// that fires when stock drops at or below a reorder threshold. It then
// drives two assignments, waiting two moments after each.
func runDemo(momentDuration time.Duration, currency string) error {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	rt := runtime.New(runtime.Options{
		MomentDuration:  momentDuration,
		DefaultCurrency: currency,
		Logger:          logger.Sugar(),
	})

	rt.On(func(ev reactor.Event) {
		fmt.Printf("[moment %d] %s %s\n", ev.MomentIndex, ev.Kind, ev.SubjectName)
	})

	stock := rt.Store().NewNumber(20)
	rt.Define("stock", stock)

	nonNegative := &types.BinaryExpr{
		Left: &types.Ident{Name: "stock"}, Op: types.OpGTE, Right: &types.IntLit{Value: 0},
	}
	healToZero := &types.AssignExpr{Target: &types.Ident{Name: "stock"}, Value: &types.IntLit{Value: 0}}
	if _, err := rt.RegisterConstraint("stock_nonnegative", nonNegative, healToZero); err != nil {
		return fmt.Errorf("register stock_nonnegative: %w", err)
	}

	lowStock := &types.BinaryExpr{
		Left: &types.Ident{Name: "stock"}, Op: types.OpLTE, Right: &types.IntLit{Value: 5},
	}
	logReorder := &types.CallExpr{
		Callee: &types.Ident{Name: "noop"},
	}
	rt.Define("noop", rt.Store().NewFunction("noop", nil, &types.NilLit{}, nil))
	rt.RegisterTrigger("reorder_needed", value.EventDataChanged, lowStock, logReorder)

	rt.Start()
	defer rt.Stop()

	if err := rt.Assign("stock", rt.Store().NewNumber(3)); err != nil {
		return fmt.Errorf("assign stock: %w", err)
	}
	time.Sleep(2 * momentDuration)

	if err := rt.Assign("stock", rt.Store().NewNumber(-1)); err != nil {
		return fmt.Errorf("assign stock: %w", err)
	}
	time.Sleep(2 * momentDuration)

	final, _ := rt.Env().Lookup("stock")
	v, _ := rt.Store().Number(final)
	fmt.Printf("final stock: %g\n", v)

	return nil
}
