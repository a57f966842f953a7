package builder

// FunctionBuilder builds the body of a FuncDefn: a dataflow region
// whose Input/Output rows are the function's declared signature. All
// dataflow methods (InputWires, AddDataflowOp, LoadConst,
// MakePredicate, SetOutputs, FinishWithOutputs) come from the
// embedded dataflowBase.
type FunctionBuilder struct {
	*dataflowBase
	Name string
}
