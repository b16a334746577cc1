package repository

const listMessagesCypher = `
MATCH (n:Message)
RETURN n
`

const createMessageCypher = `
CREATE (n:Message {id: $id, text: $text, t: timestamp()})
RETURN n
`

const updateMessageTextCypher = `
MATCH (n:Message)
WHERE n.id = $id
SET n.text = $text
RETURN n
`
