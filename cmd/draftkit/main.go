package main

import (
	"context"

	"draftkit/cmd/draftkit/commands"
	"draftkit/lib/osutil"
)

func main() {
	ctx, stop := osutil.SignalContext(context.Background())
	defer stop()
	commands.ExecuteContext(ctx)
}
