package morphcloud

type Commands struct {
	app *App
}

// Exit asks the app to leave its running state after the current frame.
func (cmd *Commands) Exit() {
	cmd.app.changeState(cmd.app.finalState)
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

func (cmd *Commands) Logger() Logger {
	return cmd.app.Logger()
}
