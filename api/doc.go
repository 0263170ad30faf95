/*
Package api provides the request pipeline shared by all signing endpoints of
the enclave service.

Every signing endpoint follows the same flow:

	inbound request -> domain validation -> intent envelope -> BCS encoding -> signature -> response

Pipeline composes a pure validation function with the intent.Assembler, so
handlers only supply the validation rules and the purpose tag of their
responses. The wire format is

	POST {"payload": <request>}
	200  {"response": {"intent": <scope>, "timestamp_ms": <ms>, "data": <response>}, "signature": "<hex>"}

# Error Mapping

  - *intent.ValidationError and malformed bodies: 400 with a descriptive message
  - *intent.ClockError: 500 naming the clock failure
  - *intent.EncodingError, *intent.SigningError and anything else: 500 with a
    generic message; the detail only goes to the log

See the votehandler subpackage for a worked example.
*/
package api
