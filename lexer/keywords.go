package lexer

import "github.com/dlang-tools/dparse/syntax"

// keywords maps every reserved word to its syntax.Kind, generalized from
// the teacher's single keyword switch (syntax/lexer.go's markup/code/math
// dispatch) to this language's much larger reserved-word set (spec §6).
var keywords = map[string]syntax.Kind{
	"module": syntax.KwModule, "import": syntax.KwImport, "alias": syntax.KwAlias,
	"class": syntax.KwClass, "struct": syntax.KwStruct, "union": syntax.KwUnion,
	"enum": syntax.KwEnum, "interface": syntax.KwInterface, "template": syntax.KwTemplate,
	"mixin": syntax.KwMixin, "this": syntax.KwThis, "super": syntax.KwSuper,
	"pragma": syntax.KwPragma, "invariant": syntax.KwInvariant, "unittest": syntax.KwUnittest,
	"package": syntax.KwPackage, "export": syntax.KwExport,

	"static": syntax.KwStatic, "shared": syntax.KwShared, "const": syntax.KwConst,
	"immutable": syntax.KwImmutable, "inout": syntax.KwInout, "scope": syntax.KwScope,
	"extern": syntax.KwExtern, "final": syntax.KwFinal, "abstract": syntax.KwAbstract,
	"override": syntax.KwOverride, "private": syntax.KwPrivate, "protected": syntax.KwProtected,
	"public": syntax.KwPublic, "deprecated": syntax.KwDeprecated, "lazy": syntax.KwLazy,
	"ref": syntax.KwRef, "auto": syntax.KwAuto, "pure": syntax.KwPure,
	"nothrow": syntax.KwNothrow, "__gshared": syntax.KwGShared, "__parameters": syntax.KwParameters,

	"if": syntax.KwIf, "else": syntax.KwElse, "while": syntax.KwWhile, "do": syntax.KwDo,
	"for": syntax.KwFor, "foreach": syntax.KwForeach, "foreach_reverse": syntax.KwForeachReverse,
	"switch": syntax.KwSwitch, "case": syntax.KwCase,
	"default": syntax.KwDefault, "break": syntax.KwBreak, "continue": syntax.KwContinue,
	"return": syntax.KwReturn, "goto": syntax.KwGoto, "with": syntax.KwWith,
	"synchronized": syntax.KwSynchronized, "try": syntax.KwTry, "catch": syntax.KwCatch,
	"finally": syntax.KwFinally, "throw": syntax.KwThrow, "asm": syntax.KwAsm,
	"version": syntax.KwVersion, "debug": syntax.KwDebug, "assert": syntax.KwAssert,
	"out": syntax.KwOut, "body": syntax.KwBody,

	"function": syntax.KwFunction, "delegate": syntax.KwDelegate, "new": syntax.KwNew,
	"delete": syntax.KwDelete, "cast": syntax.KwCast, "typeof": syntax.KwTypeof,
	"typeid": syntax.KwTypeid, "__traits": syntax.KwTraits, "__vector": syntax.KwVector,
	"null": syntax.KwNull, "true": syntax.KwTrue, "false": syntax.KwFalse,

	"__FILE__": syntax.KwFile, "__LINE__": syntax.KwLine, "__MODULE__": syntax.KwModuleIntr,
	"__FUNCTION__": syntax.KwFunctionIntr, "__PRETTY_FUNCTION__": syntax.KwPrettyFunc,
	"__DATE__": syntax.KwDate, "__TIME__": syntax.KwTime, "__TIMESTAMP__": syntax.KwTimestamp,
	"__VENDOR__": syntax.KwVendor, "__VERSION__": syntax.KwVersionIntr, "__EOF__": syntax.KwEOFIntrinsic,

	"is": syntax.Is, "in": syntax.In,
}

// builtinTypeNames are the value/property types spec §4.10 says the lexer
// tags with one kind (KwBuiltinType) and carries the spelling in Token.Text.
var builtinTypeNames = map[string]bool{
	"int": true, "uint": true, "long": true, "ulong": true, "short": true,
	"ushort": true, "byte": true, "ubyte": true, "bool": true, "char": true,
	"wchar": true, "dchar": true, "float": true, "double": true, "real": true,
	"ifloat": true, "idouble": true, "ireal": true, "cfloat": true,
	"cdouble": true, "creal": true, "void": true,
}

// lookupIdent classifies an already-scanned identifier lexeme as a keyword,
// a builtin type, or a plain identifier.
func lookupIdent(text string) syntax.Kind {
	if k, ok := keywords[text]; ok {
		return k
	}
	if builtinTypeNames[text] {
		return syntax.KwBuiltinType
	}
	return syntax.Ident
}
