package assemble

// tddCommonContext is injected into TDD assemblies that carry no Common
// Context of their own.
const tddCommonContext = `## Common Context

**TDD Protocol:** every cycle runs RED, GREEN, REFACTOR in order.

1. **RED:** write the test named in the cycle and run it. It must fail with
   the expected failure before any implementation is written.
2. **GREEN:** write the minimal implementation that makes the test pass, then
   run the full suite.
3. **REFACTOR:** tidy the code while every test stays green.

**Stop Conditions:**
- The RED test passes before the implementation exists.
- GREEN cannot pass without changing an earlier test.
- A previously passing test regresses.

**Error Conditions:**
- The failure differs from the expected failure (wrong exception or import error).
- Build or lint errors that cannot be fixed inside the cycle.

**Dependencies:** cycles run in document order; each cycle builds on the
cycles before it.
`
