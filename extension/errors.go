package extension

import "errors"

// SignatureError sentinels. Each is wrapped with fmt.Errorf("...: %w")
// at the call site; the offending value is never baked into the
// sentinel itself.
var (
	// ErrNameMismatch indicates an OpDef/TypeDef was looked up under a
	// name that does not match its declared name.
	ErrNameMismatch = errors.New("extension: name mismatch")

	// ErrExtensionMismatch indicates an op/type's parent-extension id
	// does not match the extension it was looked up in.
	ErrExtensionMismatch = errors.New("extension: extension mismatch")

	// ErrTypeArgMismatch indicates a TypeArg's kind does not satisfy
	// the declared TypeParam.
	ErrTypeArgMismatch = errors.New("extension: type argument mismatch")

	// ErrInvalidTypeArgs indicates the arity or shape of a TypeArg list
	// is invalid for the op/type being instantiated.
	ErrInvalidTypeArgs = errors.New("extension: invalid type arguments")

	// ErrExtensionNotFound indicates a registry lookup found no
	// Extension under the requested id.
	ErrExtensionNotFound = errors.New("extension: extension not found")

	// ErrExtensionOpNotFound indicates an Extension has no OpDef under
	// the requested name.
	ErrExtensionOpNotFound = errors.New("extension: op not found in extension")

	// ErrExtensionTypeNotFound indicates an Extension has no TypeDef
	// under the requested name.
	ErrExtensionTypeNotFound = errors.New("extension: type not found in extension")

	// ErrWrongBound indicates a TypeDef's declared TypeBound disagrees
	// with what its definition computes.
	ErrWrongBound = errors.New("extension: wrong type bound")

	// ErrTypeVarDoesNotMatchDeclaration indicates a cached type
	// variable disagrees with the declaration it was checked against.
	ErrTypeVarDoesNotMatchDeclaration = errors.New("extension: type variable does not match declaration")

	// ErrFreeTypeVar indicates a TypeArg references a type variable
	// with no corresponding declaration in scope.
	ErrFreeTypeVar = errors.New("extension: free type variable")

	// ErrTypeApplyIncorrectCache indicates an ExtensionOp's cached
	// signature disagrees with recomputing compute_signature on its args.
	ErrTypeApplyIncorrectCache = errors.New("extension: cached signature disagrees with recomputation")

	// ErrDuplicateExtension indicates ExtensionRegistry construction
	// was given two extensions under the same name.
	ErrDuplicateExtension = errors.New("extension: duplicate extension name")

	// ErrDuplicateOpDef indicates an Extension was given two OpDefs
	// under the same name.
	ErrDuplicateOpDef = errors.New("extension: duplicate op definition")

	// ErrDuplicateTypeDef indicates an Extension was given two TypeDefs
	// under the same name.
	ErrDuplicateTypeDef = errors.New("extension: duplicate type definition")

	// ErrDuplicateValue indicates an Extension was given two named
	// constant values under the same name.
	ErrDuplicateValue = errors.New("extension: duplicate value name")
)
