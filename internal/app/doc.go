// Package app wires the survey analytics server together and manages its
// lifecycle.
//
// # Initialization Flow
//
//	1. Load configuration from environment and the optional YAML file
//	2. Initialize logging and OpenTelemetry
//	3. Resolve and create the data, export and log directories
//	4. Build the text analyzer, response source, analytics and export services
//	5. Install middleware and register the /api routes
//	6. Start the HTTP server; stop it gracefully on SIGINT or SIGTERM
//
// # Usage
//
//	application, err := app.NewApplication()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := application.Run(); err != nil {
//	    log.Fatal(err)
//	}
package app
