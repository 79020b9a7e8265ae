package main

import (
	"context"
	"log"
	"os"

	"pkt.systems/psi"
	"pkt.systems/pslog"

	"github.com/open-cli-collective/chatmd/internal/cmd/root"
)

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole}),
	)
	ctx = pslog.ContextWithLogger(ctx, logger)
	log.SetOutput(pslog.LogLogger(logger).Writer())
	log.SetFlags(0)

	cmd := root.NewCmdRoot()
	if err := cmd.ExecuteContext(ctx); err != nil {
		pslog.Ctx(ctx).With("err", err).Error("chatmd command failed")
		return 1
	}
	return 0
}
