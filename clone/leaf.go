package clone

import (
	"github.com/gogpu/fxclone/fx"
)

// CloneType copies a type descriptor.
func (c *Cloner) CloneType(src *fx.Type) (*fx.Type, error) {
	if src == nil {
		return nil, nil
	}
	dst, err := newNode[fx.Type](c)
	if err != nil {
		return nil, err
	}
	*dst = *src
	return dst, nil
}

// ReleaseType releases a type descriptor.
func (c *Cloner) ReleaseType(t *fx.Type) {
	if t == nil {
		return
	}
	freeNode(c, t)
}

// CloneConstant copies a constant: the numeric slots bit for bit, the
// string payload and every element constant in order.
func (c *Cloner) CloneConstant(src *fx.Constant) (_ *fx.Constant, err error) {
	if src == nil {
		return nil, nil
	}
	dst, err := newNode[fx.Constant](c)
	if err != nil {
		return nil, err
	}
	defer rollback(&err, func() { c.ReleaseConstant(dst) })

	dst.Value = src.Value
	if err = c.cloneStrings(stringField{"string", &dst.String, src.String}); err != nil {
		return nil, err
	}
	if dst.Elements, err = cloneSeq(c, "elements", src.Elements, c.CloneConstant, c.ReleaseConstant); err != nil {
		return nil, err
	}
	return dst, nil
}

// ReleaseConstant releases a constant and its element constants.
func (c *Cloner) ReleaseConstant(k *fx.Constant) {
	if k == nil {
		return
	}
	releaseSeq(c, k.Elements, c.ReleaseConstant)
	c.releaseStrings(&k.String)
	freeNode(c, k)
}

// CloneOperation copies one access chain operation and both of its types.
func (c *Cloner) CloneOperation(src *fx.Operation) (_ *fx.Operation, err error) {
	if src == nil {
		return nil, nil
	}
	dst, err := newNode[fx.Operation](c)
	if err != nil {
		return nil, err
	}
	defer rollback(&err, func() { c.ReleaseOperation(dst) })

	dst.Kind = src.Kind
	dst.Index = src.Index
	dst.Swizzle = src.Swizzle
	if dst.From, err = c.CloneType(src.From); err != nil {
		return nil, at(err, "from")
	}
	if dst.To, err = c.CloneType(src.To); err != nil {
		return nil, at(err, "to")
	}
	return dst, nil
}

// ReleaseOperation releases an operation.
func (c *Cloner) ReleaseOperation(op *fx.Operation) {
	if op == nil {
		return
	}
	c.ReleaseType(op.From)
	c.ReleaseType(op.To)
	freeNode(c, op)
}

// CloneExpression copies an expression, its optional constant and its
// access chain.
func (c *Cloner) CloneExpression(src *fx.Expression) (_ *fx.Expression, err error) {
	if src == nil {
		return nil, nil
	}
	dst, err := newNode[fx.Expression](c)
	if err != nil {
		return nil, err
	}
	defer rollback(&err, func() { c.ReleaseExpression(dst) })

	dst.Base = src.Base
	dst.IsLValue = src.IsLValue
	dst.IsConstant = src.IsConstant
	if dst.Type, err = c.CloneType(src.Type); err != nil {
		return nil, at(err, "type")
	}
	if dst.Constant, err = c.CloneConstant(src.Constant); err != nil {
		return nil, at(err, "constant")
	}
	if dst.Chain, err = cloneSeq(c, "chain", src.Chain, c.CloneOperation, c.ReleaseOperation); err != nil {
		return nil, err
	}
	return dst, nil
}

// ReleaseExpression releases an expression.
func (c *Cloner) ReleaseExpression(e *fx.Expression) {
	if e == nil {
		return
	}
	releaseSeq(c, e.Chain, c.ReleaseOperation)
	c.ReleaseConstant(e.Constant)
	c.ReleaseType(e.Type)
	freeNode(c, e)
}
