// Package toolbridge exposes a pluggable set of callable tools to external
// agents through a uniform invocation contract, and makes that set remotely
// discoverable and callable over a persistent websocket connection using a
// JSON-RPC style protocol (MCP).
//
// # Tools and the registry
//
// A Tool is a named, schema-described capability. Tools built with NewTool
// validate their arguments against the declared parameter list and convert
// every failure mode, including panics in the body, into the uniform
// {result, success, error} Result shape:
//
//	echo := toolbridge.NewTool("echo", "Echo a message back", toolbridge.CategoryCustom,
//	    []toolbridge.Parameter{
//	        {Name: "msg", Type: toolbridge.TypeString, Description: "Message to echo", Required: true},
//	    },
//	    func(_ context.Context, args map[string]any) (any, error) {
//	        return args["msg"], nil
//	    },
//	)
//
//	reg := toolbridge.NewRegistry(slog.Default())
//	_ = reg.Register(echo)
//
//	res := reg.Execute(ctx, "echo", map[string]any{"msg": "hi"})
//	// res.Success == true, res.Result == "hi"
//
// Registry.Execute never panics and never returns nil: a missing tool, a
// failed validation, or a faulting body all come back as a failed Result.
// Callers never need to recover from a registry call.
//
// # Protocol roles
//
// Server exposes tools and resources over websocket connections:
//
//	srv := toolbridge.NewServer("localhost:3000", toolbridge.WithServerLogger(slog.Default()))
//	srv.MountRegistry(reg)
//	srv.RegisterResourceContent(toolbridge.Resource{
//	    URI:      "data://sample",
//	    Name:     "Sample data",
//	    MIMEType: "text/csv",
//	}, "a,b\n1,2\n")
//	_ = srv.Start(ctx)
//
// Client connects to a server and issues the protocol operations:
//
//	c := toolbridge.NewClient("ws://localhost:3000")
//	if err := c.Connect(ctx); err != nil { ... }
//	defer c.Disconnect()
//
//	tools, err := c.ListTools(ctx)
//	content, err := c.CallTool(ctx, "echo", map[string]any{"msg": "hi"})
//
// Every request carries a correlation id that the server echoes back
// unmodified; a remote caller always receives a well-formed response
// (success or error) and never observes a dropped connection as the result
// of a tool-level fault.
package toolbridge
