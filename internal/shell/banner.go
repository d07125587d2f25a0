package shell

// Welcome prints the branded header and, when unsafe scripts need confirmation,
// a production warning.
func (c *Controller) Welcome() {
	c.out.Header(c.settings.Title, c.settings.Subtitle)
	if c.settings.confirmationRequired() {
		c.out.Warning("⚠️  Running in PRODUCTION environment. Scripts not marked production-safe ask for confirmation.")
	}
}
