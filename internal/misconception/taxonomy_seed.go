package misconception

// Labels attached to generated distractors.
const (
	OffByOneMinus      = "off_by_one_minus"
	OffByOnePlus       = "off_by_one_plus"
	BoundaryOffByTwo   = "boundary_off_by_two"
	BaseCaseZero       = "base_case_zero"
	BaseCaseOne        = "base_case_one"
	DroppedLast        = "boundary_dropped_last"
	DroppedFirst       = "boundary_dropped_first"
	ElementOffByOne    = "off_by_one_element"
	DeferredDoubled    = "process_deferred_doubled"
	DeferredHalved     = "process_deferred_halved"
	ProcessConfusion   = "recursive_vs_iterative"
	ComplexityConfused = "complexity_confusion"
	TimeSpaceConfused  = "time_space_confusion"
	PairCountConfused  = "pair_count_confusion"
	PaddedToPairCount  = "pair_count_padding"
	ReversedOrder      = "list_reversed_order"
	ExtraNesting       = "list_extra_nesting"
	PairListConfused   = "pair_list_confusion"
	PairSwapped        = "pair_head_tail_swapped"
	EmptyListConfused  = "empty_list_confusion"
	ArgumentOrder      = "accumulate_argument_order"
	EagerEvaluation    = "stream_eager_evaluation"
	BooleanNegation    = "boolean_negation"
	IncorrectEval      = "incorrect_evaluation"
	RuntimeError       = "runtime_error_assumption"
	GenericError       = "generic_error"
	ArithmeticError    = "arithmetic_error"
)

// seedMisconceptions is the built-in taxonomy for introductory Source
// programs.
var seedMisconceptions = []Misconception{
	// Off-by-one and boundary errors
	{
		ID:          OffByOneMinus,
		Category:    CategoryOffByOne,
		Label:       "Stops one step early",
		Description: "Stops the recursion or count one step before the base case",
	},
	{
		ID:          OffByOnePlus,
		Category:    CategoryOffByOne,
		Label:       "Runs one step too far",
		Description: "Counts the base case as an extra step",
	},
	{
		ID:          BoundaryOffByTwo,
		Category:    CategoryOffByOne,
		Label:       "Skips both ends",
		Description: "Excludes both the first and the last step of the computation",
	},
	{
		ID:          BaseCaseZero,
		Category:    CategoryOffByOne,
		Label:       "Base case value",
		Description: "Believes the program returns its base case value of 0",
	},
	{
		ID:          BaseCaseOne,
		Category:    CategoryOffByOne,
		Label:       "Base case value",
		Description: "Believes the program returns its base case value of 1",
	},
	{
		ID:          DroppedLast,
		Category:    CategoryOffByOne,
		Label:       "Misses the last element",
		Description: "Stops traversal before the final element of the list",
	},
	{
		ID:          DroppedFirst,
		Category:    CategoryOffByOne,
		Label:       "Misses the first element",
		Description: "Starts traversal at the tail instead of the head",
	},
	{
		ID:          ElementOffByOne,
		Category:    CategoryOffByOne,
		Label:       "Element-wise off by one",
		Description: "Applies an off-by-one error to every element of the result",
	},

	// Process shape
	{
		ID:          DeferredDoubled,
		Category:    CategoryProcess,
		Label:       "Deferred operations doubled",
		Description: "Applies each deferred operation twice when unwinding the recursion",
	},
	{
		ID:          DeferredHalved,
		Category:    CategoryProcess,
		Label:       "Deferred operations halved",
		Description: "Assumes only half of the deferred operations are carried out",
	},
	{
		ID:          ProcessConfusion,
		Category:    CategoryProcess,
		Label:       "Recursive vs iterative process",
		Description: "Confuses a recursive process with an iterative one",
	},

	// Orders of growth
	{
		ID:          ComplexityConfused,
		Category:    CategoryComplexity,
		Label:       "Order of growth confusion",
		Description: "Picks a neighbouring order of growth",
	},
	{
		ID:          TimeSpaceConfused,
		Category:    CategoryComplexity,
		Label:       "Time vs space",
		Description: "Answers with the space complexity instead of the process type or time complexity",
	},

	// Lists and pairs
	{
		ID:          PairCountConfused,
		Category:    CategoryList,
		Label:       "Pair count",
		Description: "Reports the number of pairs created instead of the result",
	},
	{
		ID:          PaddedToPairCount,
		Category:    CategoryList,
		Label:       "List length from pair count",
		Description: "Assumes the result has one element per pair created",
	},
	{
		ID:          ReversedOrder,
		Category:    CategoryList,
		Label:       "Reversed list",
		Description: "Builds the list back to front, as an iterative accumulation would",
	},
	{
		ID:          ExtraNesting,
		Category:    CategoryList,
		Label:       "Extra nesting",
		Description: "Confuses a list with a list containing that list",
	},
	{
		ID:          PairListConfused,
		Category:    CategoryList,
		Label:       "Pair read as list",
		Description: "Treats pair(a, b) as list(a, b), adding a null tail",
	},
	{
		ID:          PairSwapped,
		Category:    CategoryList,
		Label:       "Head and tail swapped",
		Description: "Mixes up which component head and tail select",
	},
	{
		ID:          EmptyListConfused,
		Category:    CategoryList,
		Label:       "Empty list",
		Description: "Treats the empty list as a value rather than the end marker",
	},

	// Higher-order functions
	{
		ID:          ArgumentOrder,
		Category:    CategoryHOF,
		Label:       "Accumulate argument order",
		Description: "Swaps the argument order of the combining function",
	},

	// Streams
	{
		ID:          EagerEvaluation,
		Category:    CategoryLazy,
		Label:       "Eager stream",
		Description: "Assumes stream tails are evaluated eagerly",
	},

	// Catch-all evaluation errors
	{
		ID:          BooleanNegation,
		Category:    CategoryEvaluation,
		Label:       "Negated condition",
		Description: "Evaluates the condition the wrong way round",
	},
	{
		ID:          IncorrectEval,
		Category:    CategoryEvaluation,
		Label:       "Incorrect evaluation",
		Description: "Believes the program produces no value",
	},
	{
		ID:          RuntimeError,
		Category:    CategoryEvaluation,
		Label:       "Runtime error",
		Description: "Believes the program fails at runtime",
	},
	{
		ID:          GenericError,
		Category:    CategoryEvaluation,
		Label:       "Generic error",
		Description: "No specific misconception",
	},
	{
		ID:          ArithmeticError,
		Category:    CategoryEvaluation,
		Label:       "Arithmetic slip",
		Description: "A random arithmetic mistake",
	},
}
