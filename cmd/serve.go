package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/sourcequiz/internal/conceptgraph"
	"github.com/abhisek/sourcequiz/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the generation and analysis HTTP API",
	RunE:  runServe,
}

func init() {
	addPipelineFlags(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (default from config)")
	serveCmd.Flags().Duration("generate-timeout", 2*time.Minute, "Time limit for one generation request")
}

func runServe(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}

	st, err := e.openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	p, err := e.buildPipeline(cmd, st)
	if err != nil {
		return err
	}

	timeout, _ := cmd.Flags().GetDuration("generate-timeout")
	srv := server.New(server.Deps{
		Graph:     conceptgraph.New(e.cur.Syllabus),
		Analyzer:  e.analyzer(),
		Generator: p,
		Questions: st.QuestionRepo(),
	}, server.Options{
		AllowedOrigins:  e.cfg.Server.AllowedOrigins,
		GenerateTimeout: timeout,
		Seed:            e.cfg.Pipeline.Seed,
	}, e.logger)

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = e.cfg.Addr()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "Listening on http://%s\n", addr)
	return srv.ListenAndServe(ctx, addr)
}
