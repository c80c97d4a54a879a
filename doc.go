// Package imago provides a normalized core for multi-provider image generation.
//
// The library fronts several independent image-generation services — each with
// its own request schema, parameter bounds, authentication scheme, and response
// envelope — behind a single validated request/result contract. Requests are a
// closed tagged union (one variant per provider) that can only be constructed
// through validation, and every provider ultimately yields the same [Result]
// shape: a list of images, each a remote URL or inline base64 data with a MIME
// type, plus any narrative text the upstream interleaved.
//
// # Packages
//
//   - [github.com/spetersoncode/imago/catalog]: static registry of providers
//     and their models
//   - [github.com/spetersoncode/imago/build]: validation and request
//     construction from raw user input
//   - [github.com/spetersoncode/imago/client]: dispatch router holding
//     credentials and per-provider adapters
//   - provider/*: one adapter per upstream service
//
// # Basic Usage
//
// Build a validated request and dispatch it:
//
//	c := client.New(client.Config{
//	    APIKeys: client.APIKeys{Together: os.Getenv("TOGETHER_API_KEY")},
//	})
//
//	req, err := build.Build("together", build.Fields{
//	    Prompt: "a lighthouse at dusk",
//	    Model:  "black-forest-labs/FLUX.1-schnell",
//	    N:      1,
//	    Width:  "1024",
//	    Height: "768",
//	    Steps:  "4",
//	})
//	if err != nil {
//	    log.Fatal(err) // *imago.ValidationError
//	}
//
//	result, err := c.Dispatch(ctx, req)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, img := range result.Images {
//	    fmt.Println(img.URL, img.MIMEType)
//	}
//
// # Error Handling
//
// Failures are discriminated values, never duck-typed inspection:
//
//   - [ValidationError]: input rejected before any network call
//   - [ConfigurationError]: required credential missing
//   - [UpstreamError]: the provider returned an error status or body
//   - [FormatError]: the provider returned success with a shape the
//     normalizer cannot interpret (including zero images)
//
// Use [HTTPStatus] to map any of them to a transport status code.
//
// None of these are retried inside the core; a failed request is terminal and
// must be rebuilt by the caller.
package imago
