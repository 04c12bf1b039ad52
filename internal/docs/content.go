package docs

var topics = []Topic{
	{
		Name:    "quickstart",
		Title:   "Quick Start",
		Summary: "Getting started with runbook",
		Content: topicQuickstart,
	},
	{
		Name:    "format",
		Title:   "Runbook Format",
		Summary: "Frontmatter, phases, steps, cycles, and metadata",
		Content: topicFormat,
	},
	{
		Name:    "validate",
		Title:   "Semantic Checks",
		Summary: "model-tags, lifecycle, test-counts, red-plausibility",
		Content: topicValidate,
	},
	{
		Name:    "config",
		Title:   "Configuration Reference",
		Summary: "Config file fields, environment overrides, and defaults",
		Content: topicConfig,
	},
}

const topicQuickstart = `Quick Start
===========

1. Scaffold a starter runbook:

    runbook init my-feature

   This creates plans/my-feature/runbook.md and .runbook.yaml.

2. Edit the runbook. Each "## Step X.Y:" or "### Cycle X.Y:" header is
   one unit of work; "### Phase N:" markers group units into phases.

3. Compile it:

    runbook prepare plans/my-feature/runbook.md

   Structural errors are printed as ERROR: lines and nothing is written.
   On success you get one agent per phase under .claude/agents/, one file
   per unit under plans/my-feature/steps/, and
   plans/my-feature/orchestrator-plan.md. Generated files are staged in git.

4. Run the semantic checks:

    runbook validate all plans/my-feature/runbook.md

5. Recompile on every save while editing:

    runbook watch plans/my-feature/runbook.md

CLI
---

  runbook prepare <path>                 Compile a runbook file or phase directory
  runbook validate <check> <path>        Run one semantic check
  runbook validate all <path>            Run every check, exit with the worst result
  runbook watch <path>                   Recompile on change
  runbook init <name>                    Scaffold plans/<name>/runbook.md
  runbook docs [topic]                   Show documentation

Global flags: --config <file>, --log-level <debug|info|warn|error>.
`

const topicFormat = `Runbook Format
==============

Frontmatter
-----------

An optional YAML block delimited by "---" lines:

    ---
    name: my-feature
    type: tdd          # general (default), tdd, mixed, inline
    model: sonnet      # haiku, sonnet, opus
    ---

Unknown types and models are reported as warnings and ignored.

Sections
--------

  ## Common Context             Shared by every agent of the runbook.
  ## Orchestrator Instructions  Used verbatim as the orchestrator plan.
  ## Step X.Y: Title            A general unit of work.
  ### Cycle X.Y: Title          A TDD unit. Needs RED and GREEN markers and
                                Stop/Error Conditions (here or in Common
                                Context). Major 0 cycles are spikes;
                                "[regression]" cycles need only GREEN.

Headers inside fenced code blocks are ignored everywhere.

Phases
------

    ### Phase 2: Core (model: opus)
    ### Phase 3: Cleanup (type: inline)

A phase marker starts phase N. Text between the marker and the first unit
becomes the Phase Context of every unit in it. Inline phases are executed
by the orchestrator directly and get no step files.

Phase directories
-----------------

A directory of runbook-phase-N.md files (N contiguous, starting at 0 or
1) is assembled into one document. Frontmatter is synthesized from the
first fragment that declares each field. TDD runbooks without a Common
Context receive the default TDD protocol.

Unit metadata
-------------

    **Execution Model**: opus
    **Report Path**: ` + "`plans/my-feature/reports/step-1-1.md`" + `

The execution model of a unit resolves in order: the unit's Execution
Model, the phase marker's model, the frontmatter model. A unit with no
model is an error.
`

const topicValidate = `Semantic Checks
===============

  runbook validate <check> <path> [--skip-<check>]

Each check writes validation-<check>.md to <runbook dir>/reports/ (or
<plans-dir>/<file stem>/reports/ for a file outside a plan directory).

Exit codes: 0 pass or skipped, 1 fail, 2 ambiguous.

model-tags
    Units touching sensitive paths (agent, skill and fragment definitions,
    workflow decision files) must run on opus.

lifecycle
    Files must be created before they are modified and created only once.
    Pre-existing files are declared with --known-file <path> (repeatable)
    or known-files in the config.

test-counts
    "**Checkpoint**: N tests" claims must match the distinct test_* names
    listed before the checkpoint.

red-plausibility
    A cycle whose RED phase expects an ImportError for a module an earlier
    cycle already created is a failure. Other exceptions mentioning a
    created name are ambiguous and need review.

"runbook validate all <path>" runs the four checks with one run ID and
exits with the worst result: fail over ambiguous over pass.
`

const topicConfig = `Configuration Reference
=======================

Settings are read from .runbook.yaml in the working directory (or the file
given with --config) and from RUNBOOK_* environment variables. Environment
variables override the file: RUNBOOK_AGENTS_DIR sets agents-dir. List
values in the environment are comma separated.

Fields
------

  agents-dir          string   Where agent descriptors go. Default: .claude/agents
  baseline-dir        string   quiet-task.md and tdd-task.md templates.
                               Default: agent-core/agents
  plans-dir           string   Report root for loose runbook files. Default: plans
  default-model       string   Model for assembled phase directories. Default: sonnet
  stage               bool     Stage generated files in git. Default: true
  log-level           string   debug, info, warn, error. Default: warn
  sensitive-prefixes  list     Paths that model-tags requires opus for.
  sensitive-patterns  list     Regular expressions with the same effect.
  known-files         list     Files lifecycle treats as pre-existing.
`
